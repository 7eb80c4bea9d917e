package services

import (
	"errors"
	"strings"
	"testing"
)

func TestProjectCreate(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice")

	svc := NewProjectService(db)
	detail, err := svc.Create(&CreateProjectRequest{
		ProjectID:   "PRJ-1",
		Name:        "Test Project",
		Description: "a description",
	}, user.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if detail.ProjectID != "PRJ-1" {
		t.Errorf("ProjectID = %q, expected %q", detail.ProjectID, "PRJ-1")
	}
	if detail.CreatedBy != "alice" {
		t.Errorf("CreatedBy = %q, expected %q", detail.CreatedBy, "alice")
	}
	if len(detail.Members) != 1 || detail.Members[0] != "alice" {
		t.Errorf("Members = %v, expected [alice]", detail.Members)
	}
	if len(detail.HWUsage) != 0 {
		t.Errorf("HWUsage = %v, expected empty", detail.HWUsage)
	}
}

func TestProjectCreate_DuplicateID(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice")

	svc := NewProjectService(db)
	if _, err := svc.Create(&CreateProjectRequest{ProjectID: "PRJ-1", Name: "first"}, user.ID); err != nil {
		t.Fatalf("first Create() error = %v", err)
	}

	_, err := svc.Create(&CreateProjectRequest{ProjectID: "PRJ-1", Name: "second"}, user.ID)
	if !errors.Is(err, ErrDuplicateProjectID) {
		t.Errorf("error = %v, expected ErrDuplicateProjectID", err)
	}
}

func TestProjectCreate_GeneratedID(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice")

	svc := NewProjectService(db)
	detail, err := svc.Create(&CreateProjectRequest{Name: "No ID Given"}, user.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if !strings.HasPrefix(detail.ProjectID, "PRJ-") {
		t.Errorf("generated ProjectID = %q, expected PRJ- prefix", detail.ProjectID)
	}
}

func TestProjectJoin(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	createTestProject(t, db, "PRJ-1", alice)

	svc := NewProjectService(db)
	if err := svc.Join("PRJ-1", bob.ID); err != nil {
		t.Fatalf("Join() error = %v", err)
	}

	detail, _ := svc.Get("PRJ-1")
	if len(detail.Members) != 2 {
		t.Errorf("member count = %d, expected 2", len(detail.Members))
	}
}

func TestProjectJoin_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	createTestProject(t, db, "PRJ-1", alice)

	svc := NewProjectService(db)
	if err := svc.Join("PRJ-1", bob.ID); err != nil {
		t.Fatalf("first Join() error = %v", err)
	}
	if err := svc.Join("PRJ-1", bob.ID); err != nil {
		t.Fatalf("second Join() should be a no-op, got error = %v", err)
	}

	detail, _ := svc.Get("PRJ-1")
	if len(detail.Members) != 2 {
		t.Errorf("member count = %d after double join, expected 2", len(detail.Members))
	}
}

func TestProjectJoin_NotFound(t *testing.T) {
	db := setupTestDB(t)
	bob := createTestUser(t, db, "bob")

	svc := NewProjectService(db)
	err := svc.Join("NoSuchProject", bob.ID)
	if !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("error = %v, expected ErrProjectNotFound", err)
	}
}

func TestProjectListForUser_InsertionOrder(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	svc := NewProjectService(db)
	svc.Create(&CreateProjectRequest{ProjectID: "PRJ-B", Name: "b"}, bob.ID)
	svc.Create(&CreateProjectRequest{ProjectID: "PRJ-A", Name: "a"}, alice.ID)
	svc.Join("PRJ-B", alice.ID)

	details, err := svc.ListForUser(alice.ID)
	if err != nil {
		t.Fatalf("ListForUser() error = %v", err)
	}

	// alice created PRJ-A first, then joined PRJ-B
	if len(details) != 2 {
		t.Fatalf("project count = %d, expected 2", len(details))
	}
	if details[0].ProjectID != "PRJ-A" || details[1].ProjectID != "PRJ-B" {
		t.Errorf("order = [%s %s], expected [PRJ-A PRJ-B]",
			details[0].ProjectID, details[1].ProjectID)
	}
}

func TestProjectListForUser_OnlyOwnProjects(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	svc := NewProjectService(db)
	svc.Create(&CreateProjectRequest{ProjectID: "PRJ-A", Name: "a"}, alice.ID)
	svc.Create(&CreateProjectRequest{ProjectID: "PRJ-B", Name: "b"}, bob.ID)

	details, err := svc.ListForUser(alice.ID)
	if err != nil {
		t.Fatalf("ListForUser() error = %v", err)
	}
	if len(details) != 1 || details[0].ProjectID != "PRJ-A" {
		t.Errorf("projects = %v, expected only PRJ-A", details)
	}
}

func TestProjectGet_NotFound(t *testing.T) {
	db := setupTestDB(t)

	svc := NewProjectService(db)
	_, err := svc.Get("NoSuchProject")
	if !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("error = %v, expected ErrProjectNotFound", err)
	}
}

func TestProjectGet_IncludesUsage(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	createTestProject(t, db, "PRJ-1", alice)
	createTestHardwareSet(t, db, "HWSet1", 100)

	reservations := NewReservationService(db)
	if _, err := reservations.CheckOut("PRJ-1", "HWSet1", 5, "alice"); err != nil {
		t.Fatalf("CheckOut() error = %v", err)
	}

	svc := NewProjectService(db)
	detail, err := svc.Get("PRJ-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if detail.HWUsage["HWSet1"] != 5 {
		t.Errorf("HWUsage[HWSet1] = %d, expected 5", detail.HWUsage["HWSet1"])
	}
}
