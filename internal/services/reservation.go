package services

import (
	"errors"
	"fmt"
	"sync"

	"github.com/hwportal/backend/internal/models"
	"gorm.io/gorm"
)

// ReservationService is the checkout/check-in accounting engine. It owns the
// only two transitions that may move units between a hardware set's free
// pool and a project's usage, and guarantees the conservation invariant
//
//	available + sum(usage across projects) == capacity
//
// for every hardware set after every transition. All mutations for the same
// hardware set are serialized through a per-set mutex so two concurrent
// checkouts can never both pass the availability check against a stale
// value; operations on different sets proceed independently.
type ReservationService struct {
	db *gorm.DB

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{
		db:    db,
		locks: make(map[string]*sync.Mutex),
	}
}

// ReservationState is the snapshot returned after a successful transition.
type ReservationState struct {
	HWName       string `json:"hw_name"`
	Capacity     int    `json:"capacity"`
	Available    int    `json:"availability"`
	ProjectID    string `json:"project_id"`
	ProjectUsage int    `json:"project_usage"`
}

// lockFor returns the mutex serializing mutations of the named hardware set.
func (s *ReservationService) lockFor(hwSetName string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[hwSetName]
	if !ok {
		l = &sync.Mutex{}
		s.locks[hwSetName] = l
	}
	return l
}

// CheckOut reserves qty units of a hardware set for a project. Preconditions
// are validated in order: positive quantity, hardware set exists, project
// exists and the acting user is a member, then qty <= available. Both the
// availability decrement and the project usage increment commit in one
// transaction or not at all.
func (s *ReservationService) CheckOut(projectID, hwSetName string, qty int, username string) (*ReservationState, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}

	lock := s.lockFor(hwSetName)
	lock.Lock()
	defer lock.Unlock()

	var state *ReservationState
	err := s.db.Transaction(func(tx *gorm.DB) error {
		hw, project, err := s.loadAndAuthorize(tx, projectID, hwSetName, username)
		if err != nil {
			return err
		}

		if qty > hw.Available {
			return &InsufficientAvailabilityError{Requested: qty, Available: hw.Available}
		}

		hw.Available -= qty
		if err := tx.Model(&models.HardwareSet{}).
			Where("id = ?", hw.ID).
			Update("available", hw.Available).Error; err != nil {
			return err
		}

		var usage models.HardwareUsage
		err = tx.Where("project_id = ? AND hardware_set_id = ?", project.ID, hw.ID).
			First(&usage).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			usage = models.HardwareUsage{
				ProjectID:     project.ID,
				HardwareSetID: hw.ID,
				Quantity:      qty,
			}
			if err := tx.Create(&usage).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			usage.Quantity += qty
			if err := tx.Model(&models.HardwareUsage{}).
				Where("id = ?", usage.ID).
				Update("quantity", usage.Quantity).Error; err != nil {
				return err
			}
		}

		if err := verifyConservation(tx, hw); err != nil {
			return err
		}

		state = &ReservationState{
			HWName:       hw.Name,
			Capacity:     hw.Capacity,
			Available:    hw.Available,
			ProjectID:    project.ProjectID,
			ProjectUsage: usage.Quantity,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

// CheckIn returns qty previously checked-out units from a project to the
// hardware set's free pool. A project can never return more than it holds;
// when its usage reaches zero the usage row is deleted so the mapping stays
// sparse.
func (s *ReservationService) CheckIn(projectID, hwSetName string, qty int, username string) (*ReservationState, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}

	lock := s.lockFor(hwSetName)
	lock.Lock()
	defer lock.Unlock()

	var state *ReservationState
	err := s.db.Transaction(func(tx *gorm.DB) error {
		hw, project, err := s.loadAndAuthorize(tx, projectID, hwSetName, username)
		if err != nil {
			return err
		}

		reserved := 0
		var usage models.HardwareUsage
		err = tx.Where("project_id = ? AND hardware_set_id = ?", project.ID, hw.ID).
			First(&usage).Error
		if err == nil {
			reserved = usage.Quantity
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if qty > reserved {
			return &OverReturnError{Requested: qty, Reserved: reserved}
		}

		hw.Available += qty
		if err := tx.Model(&models.HardwareSet{}).
			Where("id = ?", hw.ID).
			Update("available", hw.Available).Error; err != nil {
			return err
		}

		remaining := reserved - qty
		if remaining == 0 {
			if err := tx.Delete(&usage).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Model(&models.HardwareUsage{}).
				Where("id = ?", usage.ID).
				Update("quantity", remaining).Error; err != nil {
				return err
			}
		}

		if err := verifyConservation(tx, hw); err != nil {
			return err
		}

		state = &ReservationState{
			HWName:       hw.Name,
			Capacity:     hw.Capacity,
			Available:    hw.Available,
			ProjectID:    project.ProjectID,
			ProjectUsage: remaining,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

// loadAndAuthorize resolves the hardware set, project and acting user and
// checks project membership, in the precondition order the API promises.
func (s *ReservationService) loadAndAuthorize(tx *gorm.DB, projectID, hwSetName, username string) (*models.HardwareSet, *models.Project, error) {
	var hw models.HardwareSet
	if err := tx.Where("name = ?", hwSetName).First(&hw).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrHardwareNotFound
		}
		return nil, nil, err
	}

	var project models.Project
	if err := tx.Where("project_id = ?", projectID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrProjectNotFound
		}
		return nil, nil, err
	}

	var user models.User
	if err := tx.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	var memberCount int64
	if err := tx.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", project.ID, user.ID).
		Count(&memberCount).Error; err != nil {
		return nil, nil, err
	}
	if memberCount == 0 && project.CreatedBy != user.ID {
		return nil, nil, ErrNotAMember
	}

	return &hw, &project, nil
}

// verifyConservation re-derives the availability invariant for the hardware
// set inside the transaction and fails it on violation, rolling back the
// whole transition.
func verifyConservation(tx *gorm.DB, hw *models.HardwareSet) error {
	var total int64
	if err := tx.Model(&models.HardwareUsage{}).
		Where("hardware_set_id = ?", hw.ID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error; err != nil {
		return err
	}

	if hw.Available < 0 || hw.Available+int(total) != hw.Capacity {
		return fmt.Errorf("availability invariant violated for %q: available=%d used=%d capacity=%d",
			hw.Name, hw.Available, total, hw.Capacity)
	}
	return nil
}
