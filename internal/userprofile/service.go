package userprofile

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jkz07/transcare/internal/auditlog"
	"github.com/jkz07/transcare/internal/auth"
)

// ========== INTERFACES ==========

type Service interface {
	Get(userID uint) (*ProfileView, error)
	Update(ctx context.Context, userID uint, input ProfileInput, ip string) (*ProfileView, error)
}

type service struct {
	repo     Repository
	authRepo auth.Repository
	auditSvc auditlog.Service
}

func NewService(repo Repository, authRepo auth.Repository, auditSvc auditlog.Service) Service {
	return &service{
		repo:     repo,
		authRepo: authRepo,
		auditSvc: auditSvc,
	}
}

// ========== DTOs ==========

// ProfileInput updates only the fields it carries; nil fields are left alone.
type ProfileInput struct {
	Pronouns    *string `json:"pronouns"`
	Age         *int    `json:"age"`
	Location    *string `json:"location"`
	Bio         *string `json:"bio"`
	THType      *string `json:"th_type"`
	JourneyTime *string `json:"journey_time"`
}

// ProfileView joins the account identity with the profile details.
type ProfileView struct {
	UserID      uint   `json:"user_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Pronouns    string `json:"pronouns"`
	Age         *int   `json:"age"`
	Location    string `json:"location"`
	Bio         string `json:"bio"`
	THType      string `json:"th_type"`
	JourneyTime string `json:"journey_time"`
}

// Option sets offered by the profile form. Values outside them are rejected
// on write.
var (
	validPronouns = map[string]bool{
		"ela/dela": true, "ele/dele": true, "elu/delu": true, "todos": true,
	}
	validTHTypes = map[string]bool{
		"feminizante": true, "masculinizante": true, "nao-binaria": true, "considerando": true,
	}
	validJourneyTimes = map[string]bool{
		"considerando": true, "0-6meses": true, "6meses-1ano": true,
		"1-2anos": true, "2-5anos": true, "5anos+": true,
	}
)

// ========== OPERATIONS ==========

func (s *service) Get(userID uint) (*ProfileView, error) {
	user, err := s.authRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	profile, err := s.repo.GetByUserID(userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		// No row yet: the view is just the account identity.
		profile = &Profile{UserID: userID}
	}

	return view(&user, profile), nil
}

func (s *service) Update(ctx context.Context, userID uint, in ProfileInput, ip string) (*ProfileView, error) {
	user, err := s.authRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	profile, err := s.repo.GetByUserID(userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		profile = &Profile{UserID: userID}
	}

	if in.Pronouns != nil {
		if *in.Pronouns != "" && !validPronouns[*in.Pronouns] {
			return nil, fmt.Errorf("pronomes inválidos: %q", *in.Pronouns)
		}
		profile.Pronouns = *in.Pronouns
	}
	if in.Age != nil {
		if *in.Age < 0 || *in.Age > 130 {
			return nil, errors.New("idade inválida")
		}
		profile.Age = in.Age
	}
	if in.Location != nil {
		profile.Location = *in.Location
	}
	if in.Bio != nil {
		profile.Bio = *in.Bio
	}
	if in.THType != nil {
		if *in.THType != "" && !validTHTypes[*in.THType] {
			return nil, fmt.Errorf("tipo de TH inválido: %q", *in.THType)
		}
		profile.THType = *in.THType
	}
	if in.JourneyTime != nil {
		if *in.JourneyTime != "" && !validJourneyTimes[*in.JourneyTime] {
			return nil, fmt.Errorf("tempo de jornada inválido: %q", *in.JourneyTime)
		}
		profile.JourneyTime = *in.JourneyTime
	}

	if err := s.repo.Save(profile); err != nil {
		return nil, err
	}

	if s.auditSvc != nil {
		_ = s.auditSvc.LogAction(ctx, &userID, "PROFILE_UPDATED", map[string]interface{}{
			"user_id": userID,
		}, ip, "success")
	}

	return view(&user, profile), nil
}

func view(user *auth.User, p *Profile) *ProfileView {
	return &ProfileView{
		UserID:      user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Pronouns:    p.Pronouns,
		Age:         p.Age,
		Location:    p.Location,
		Bio:         p.Bio,
		THType:      p.THType,
		JourneyTime: p.JourneyTime,
	}
}
