package services

import (
	"errors"
	"strings"

	"github.com/monocle-dev/tracker/internal/apperr"
	"github.com/monocle-dev/tracker/internal/auth"
	"github.com/monocle-dev/tracker/internal/mail"
	"github.com/monocle-dev/tracker/internal/models"
	"github.com/monocle-dev/tracker/internal/policy"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Notifier is told whenever a project, its category set or its situations
// change.
type Notifier interface {
	ProjectChanged(projectID uint)
}

type Dispatcher interface {
	Dispatch(msg mail.Message)
}

// Services bundles every service the API needs.
type Services struct {
	Auth       *AuthService
	Users      *UserService
	Categories *CategoryService
	Projects   *ProjectService
	Situations *SituationService
}

type Options struct {
	DB         *gorm.DB
	Policy     *policy.Enforcer
	Signer     *auth.LinkSigner
	Dispatcher Dispatcher
	Notifier   Notifier
}

func New(opts Options) *Services {
	notifier := opts.Notifier
	if notifier == nil {
		notifier = nopNotifier{}
	}

	verifications := &Verifications{signer: opts.Signer, dispatcher: opts.Dispatcher}

	return &Services{
		Auth:       &AuthService{db: opts.DB, signer: opts.Signer, verifications: verifications},
		Users:      &UserService{db: opts.DB, policy: opts.Policy, verifications: verifications},
		Categories: &CategoryService{db: opts.DB, policy: opts.Policy, notifier: notifier},
		Projects:   &ProjectService{db: opts.DB, policy: opts.Policy, notifier: notifier},
		Situations: &SituationService{db: opts.DB, policy: opts.Policy, notifier: notifier},
	}
}

type nopNotifier struct{}

func (nopNotifier) ProjectChanged(uint) {}

// Verifications sends email verification links.
type Verifications struct {
	signer     *auth.LinkSigner
	dispatcher Dispatcher
}

// Send queues a verification email for user. Failures are logged only.
func (v *Verifications) Send(user *models.User) {
	if v.signer == nil || v.dispatcher == nil {
		return
	}

	link, err := v.signer.VerificationURL(user.ID, user.Email)
	if err != nil {
		log.Error().Err(err).Uint("user_id", user.ID).Msg("failed to build verification link")
		return
	}

	v.dispatcher.Dispatch(mail.VerificationMessage(user.Name, user.Email, link))
}

func findByID[T any](tx *gorm.DB, id uint, model string) (*T, error) {
	var record T
	if err := tx.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(model)
		}
		return nil, apperr.Internal(err)
	}
	return &record, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func emailTaken(tx *gorm.DB, email string, exceptID uint) (bool, error) {
	var count int64
	query := tx.Model(&models.User{}).Where("email = ?", email)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var errEmailTaken = apperr.Validation("The email has already been taken.")

// wrap turns storage errors into API errors, keeping errors that already are.
func wrap(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errEmailTaken
	}
	return apperr.From(err)
}
