package ledger

import (
	"errors"
	"fmt"
	"time"

	"pod-tracker/logger"
	foresponse_model "pod-tracker/models/foresponse"
	trip_model "pod-tracker/models/trip"

	"gorm.io/gorm"
)

var (
	// ErrIssueAlreadyOpen rejects a second issue while one is unresolved.
	ErrIssueAlreadyOpen = errors.New("trip already has an open issue")

	// ErrNoOpenIssue rejects updates and resolutions without an open issue.
	ErrNoOpenIssue = errors.New("trip has no open issue")

	// ErrTripNotFound mirrors the store's lookup failure.
	ErrTripNotFound = errors.New("trip not found")

	// ErrRemarkNotFound is returned when an owner remark id does not exist.
	ErrRemarkNotFound = errors.New("remark not found")
)

// Ledger manages the issue and remark sub-records hanging off a trip.
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// ReportIssue opens the trip's single issue slot. A previously resolved
// issue is replaced; an open one rejects the report.
func (l *Ledger) ReportIssue(tripID, issueType, description, reporter string) (*trip_model.Issue, error) {
	var created trip_model.Issue

	err := l.db.Transaction(func(tx *gorm.DB) error {
		var t trip_model.Trip
		if err := tx.Preload("Issue").First(&t, "id = ?", tripID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTripNotFound
			}
			return err
		}

		if t.Issue != nil {
			if !t.Issue.Resolved {
				return ErrIssueAlreadyOpen
			}
			// Replace the resolved issue, updates included.
			if err := tx.Where("issue_id = ?", t.Issue.ID).Delete(&trip_model.IssueUpdate{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(t.Issue).Error; err != nil {
				return err
			}
		}

		created = trip_model.Issue{
			TripID:      tripID,
			Type:        issueType,
			Description: description,
			ReportedBy:  reporter,
			ReportedAt:  time.Now(),
		}
		return tx.Create(&created).Error
	})

	if err != nil {
		return nil, err
	}

	logger.Warning(fmt.Sprintf("Issue reported on trip %s by %s: %s", tripID, reporter, issueType))
	return &created, nil
}

// UpdateIssue appends a progress entry to the open issue, recording
// whichever of type and description the caller changed.
func (l *Ledger) UpdateIssue(tripID, issueType, description, author string) (*trip_model.IssueUpdate, error) {
	var created trip_model.IssueUpdate

	err := l.db.Transaction(func(tx *gorm.DB) error {
		issue, err := l.openIssue(tx, tripID)
		if err != nil {
			return err
		}

		created = trip_model.IssueUpdate{
			IssueID:     issue.ID,
			Type:        issueType,
			Description: description,
			Author:      author,
		}
		return tx.Create(&created).Error
	})

	if err != nil {
		return nil, err
	}
	return &created, nil
}

// ResolveIssue closes the open issue and appends a closing note so the
// update trail records who resolved it and when.
func (l *Ledger) ResolveIssue(tripID, author string) (*trip_model.Issue, error) {
	var resolved trip_model.Issue

	err := l.db.Transaction(func(tx *gorm.DB) error {
		issue, err := l.openIssue(tx, tripID)
		if err != nil {
			return err
		}

		now := time.Now()
		if err := tx.Model(issue).Updates(map[string]interface{}{
			"resolved":    true,
			"resolved_at": now,
		}).Error; err != nil {
			return err
		}

		closing := trip_model.IssueUpdate{
			IssueID: issue.ID,
			Type:    trip_model.IssueUpdateResolved,
			Author:  author,
		}
		if err := tx.Create(&closing).Error; err != nil {
			return err
		}

		return tx.Preload("Updates", func(db *gorm.DB) *gorm.DB {
			return db.Order("issue_updates.id ASC")
		}).First(&resolved, issue.ID).Error
	})

	if err != nil {
		return nil, err
	}

	logger.Success(fmt.Sprintf("Issue on trip %s resolved by %s", tripID, author))
	return &resolved, nil
}

// AddRemark appends a runner remark. An fo remark also files an FO
// response for verification, whatever the trip's current status; the FO
// couriering the POD directly is exactly the case where the trip never
// reached couriered. Both rows land in the same transaction so the
// queue can never drift from the remark trail.
func (l *Ledger) AddRemark(tripID, remarkType, text string, images []string, courierService, docketNumber, author string) (*trip_model.RunnerRemark, error) {
	var created trip_model.RunnerRemark

	err := l.db.Transaction(func(tx *gorm.DB) error {
		var t trip_model.Trip
		if err := tx.First(&t, "id = ?", tripID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTripNotFound
			}
			return err
		}

		created = trip_model.RunnerRemark{
			TripID: tripID,
			Type:   remarkType,
			Text:   text,
			Images: trip_model.StringSlice(images),
			Author: author,
		}
		if remarkType == trip_model.RemarkFO {
			if courierService != "" {
				created.CourierService = &courierService
			}
			if docketNumber != "" {
				created.DocketNumber = &docketNumber
			}
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		if remarkType == trip_model.RemarkFO {
			response := foresponse_model.FOResponse{
				TripID:         t.ID,
				VehicleNo:      t.VehicleNo,
				FOName:         t.FOName,
				FOPhone:        t.FOPhone,
				CourierService: courierService,
				DocketNumber:   docketNumber,
				Remark:         text,
				Status:         foresponse_model.StatusPendingVerification,
				SubmittedBy:    author,
				SubmittedAt:    time.Now(),
			}
			if err := tx.Create(&response).Error; err != nil {
				return err
			}
			logger.Info(fmt.Sprintf("FO response queued for trip %s (%s / %s)", t.ID, courierService, docketNumber))
		}

		return nil
	})

	if err != nil {
		return nil, err
	}
	return &created, nil
}

// AddOwnerRemark appends an owner note to the trip.
func (l *Ledger) AddOwnerRemark(tripID, text, author string) (*trip_model.OwnerRemark, error) {
	var created trip_model.OwnerRemark

	err := l.db.Transaction(func(tx *gorm.DB) error {
		var t trip_model.Trip
		if err := tx.First(&t, "id = ?", tripID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTripNotFound
			}
			return err
		}

		created = trip_model.OwnerRemark{
			TripID: tripID,
			Text:   text,
			Author: author,
		}
		return tx.Create(&created).Error
	})

	if err != nil {
		return nil, err
	}
	return &created, nil
}

// RemoveOwnerRemark deletes an owner note by id.
func (l *Ledger) RemoveOwnerRemark(tripID string, remarkID uint) error {
	result := l.db.Where("id = ? AND trip_id = ?", remarkID, tripID).Delete(&trip_model.OwnerRemark{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRemarkNotFound
	}
	return nil
}

// openIssue loads the trip's issue and fails unless it is open.
func (l *Ledger) openIssue(tx *gorm.DB, tripID string) (*trip_model.Issue, error) {
	var issue trip_model.Issue
	err := tx.First(&issue, "trip_id = ?", tripID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoOpenIssue
		}
		return nil, err
	}
	if issue.Resolved {
		return nil, ErrNoOpenIssue
	}
	return &issue, nil
}
