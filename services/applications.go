package services

import (
	"fmt"
	"strings"
	"time"

	"foodnow-api/metrics"
	"foodnow-api/models"
	"foodnow-api/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ApplicationService struct {
	db       *gorm.DB
	apps     *repository.ApplicationRepository
	users    *repository.UserRepository
	rests    *repository.RestaurantRepository
	notifier Notifier
	log      logrus.FieldLogger
}

func NewApplicationService(db *gorm.DB, notifier Notifier, log logrus.FieldLogger) *ApplicationService {
	return &ApplicationService{
		db:       db,
		apps:     repository.NewApplicationRepository(db),
		users:    repository.NewUserRepository(db),
		rests:    repository.NewRestaurantRepository(db),
		notifier: notifier,
		log:      log,
	}
}

type ApplicationInput struct {
	RestaurantName string
	Address        string
	Phone          string
	BusinessID     string
	ImageURL       string
}

// ApplicationSummary is the admin's view of a pending application
type ApplicationSummary struct {
	ID             uint                     `json:"id"`
	RestaurantName string                   `json:"restaurant_name"`
	Address        string                   `json:"address"`
	Phone          string                   `json:"phone"`
	BusinessID     string                   `json:"business_id"`
	ImageURL       string                   `json:"image_url"`
	Status         models.ApplicationStatus `json:"status"`
	ApplicantID    uint                     `json:"applicant_id"`
	ApplicantName  string                   `json:"applicant_name"`
	ApplicantEmail string                   `json:"applicant_email"`
	SubmittedAt    time.Time                `json:"submitted_at"`
}

// Apply stores a PENDING application for a customer. The existence check and
// the insert are not atomic; two concurrent submissions may both succeed.
func (s *ApplicationService) Apply(userID uint, in ApplicationInput) (*models.RestaurantApplication, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, notFound(err, "user")
	}
	if user.Role != models.RoleCustomer {
		return nil, fmt.Errorf("only customers can apply, caller is %s: %w", user.Role, ErrForbidden)
	}

	exists, err := s.apps.ExistsForApplicant(userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("an application already exists for this account: %w", ErrConflict)
	}

	app := &models.RestaurantApplication{
		ApplicantID:    userID,
		RestaurantName: strings.TrimSpace(in.RestaurantName),
		Address:        strings.TrimSpace(in.Address),
		Phone:          strings.TrimSpace(in.Phone),
		BusinessID:     strings.TrimSpace(in.BusinessID),
		ImageURL:       in.ImageURL,
		Status:         models.ApplicationPending,
	}
	if err := s.apps.Create(app); err != nil {
		return nil, err
	}

	metrics.RecordApplication("submitted")
	s.log.WithFields(logrus.Fields{"application_id": app.ID, "user_id": userID}).Info("restaurant application submitted")
	s.notifier.ApplicationReceived(user.Email, user.Name, app.RestaurantName)
	return app, nil
}

// Approve promotes the applicant and creates their restaurant in one transaction
func (s *ApplicationService) Approve(applicationID uint) (*models.Restaurant, error) {
	var (
		restaurant *models.Restaurant
		applicant  *models.User
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		apps := s.apps.WithTx(tx)
		users := s.users.WithTx(tx)

		app, err := s.pending(apps, applicationID)
		if err != nil {
			return err
		}
		applicant, err = users.FindByID(app.ApplicantID)
		if err != nil {
			return notFound(err, "applicant")
		}

		app.Status = models.ApplicationApproved
		if err := apps.Save(app); err != nil {
			return err
		}
		if err := users.UpdateRole(applicant.ID, models.RoleRestaurantOwner); err != nil {
			return err
		}

		restaurant = &models.Restaurant{
			OwnerID:    applicant.ID,
			Name:       app.RestaurantName,
			Address:    app.Address,
			Phone:      app.Phone,
			BusinessID: app.BusinessID,
			ImageURL:   app.ImageURL,
		}
		return s.rests.WithTx(tx).Create(restaurant)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordApplication("approved")
	s.log.WithFields(logrus.Fields{"application_id": applicationID, "restaurant_id": restaurant.ID}).Info("restaurant application approved")
	s.notifier.ApplicationApproved(applicant.Email, applicant.Name, restaurant.Name)
	return restaurant, nil
}

// Reject marks a PENDING application as REJECTED with the given reason
func (s *ApplicationService) Reject(applicationID uint, reason string) (*models.RestaurantApplication, error) {
	var (
		app       *models.RestaurantApplication
		applicant *models.User
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		apps := s.apps.WithTx(tx)

		var err error
		app, err = s.pending(apps, applicationID)
		if err != nil {
			return err
		}
		applicant, err = s.users.WithTx(tx).FindByID(app.ApplicantID)
		if err != nil {
			return notFound(err, "applicant")
		}

		reason = strings.TrimSpace(reason)
		app.Status = models.ApplicationRejected
		app.RejectionReason = &reason
		return apps.Save(app)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordApplication("rejected")
	s.log.WithField("application_id", applicationID).Info("restaurant application rejected")
	s.notifier.ApplicationRejected(applicant.Email, applicant.Name, app.RestaurantName, reason)
	return app, nil
}

func (s *ApplicationService) pending(apps *repository.ApplicationRepository, id uint) (*models.RestaurantApplication, error) {
	app, err := apps.FindByID(id)
	if err != nil {
		return nil, notFound(err, "application")
	}
	if app.Status != models.ApplicationPending {
		return nil, fmt.Errorf("application %d is %s: %w", id, app.Status, ErrInvalidState)
	}
	return app, nil
}

// ListPending returns PENDING applications with their applicant's identity
func (s *ApplicationService) ListPending() ([]ApplicationSummary, error) {
	apps, err := s.apps.FindByStatus(models.ApplicationPending)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(apps))
	for i, a := range apps {
		ids[i] = a.ApplicantID
	}
	applicants, err := s.users.FindByIDs(ids)
	if err != nil {
		return nil, err
	}

	out := make([]ApplicationSummary, 0, len(apps))
	for _, a := range apps {
		u := applicants[a.ApplicantID]
		out = append(out, ApplicationSummary{
			ID:             a.ID,
			RestaurantName: a.RestaurantName,
			Address:        a.Address,
			Phone:          a.Phone,
			BusinessID:     a.BusinessID,
			ImageURL:       a.ImageURL,
			Status:         a.Status,
			ApplicantID:    a.ApplicantID,
			ApplicantName:  u.Name,
			ApplicantEmail: u.Email,
			SubmittedAt:    a.CreatedAt,
		})
	}
	return out, nil
}
