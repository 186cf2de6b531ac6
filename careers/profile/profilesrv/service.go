package profilesrv

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Abraxas-365/careerlens/careers/profile"
	"github.com/Abraxas-365/careerlens/careers/resume"
	"github.com/Abraxas-365/careerlens/pkg/errx"
	"github.com/Abraxas-365/careerlens/pkg/fsx"
	"github.com/Abraxas-365/careerlens/pkg/iam"
	"github.com/Abraxas-365/careerlens/pkg/iam/auth"
	"github.com/Abraxas-365/careerlens/pkg/kernel"
	"github.com/Abraxas-365/careerlens/pkg/logx"
	"github.com/google/uuid"
)

type Service struct {
	repo     profile.Repository
	verifier auth.Verifier
	parser   resume.Parser
	archive  fsx.FileSystem
	now      func() time.Time
}

// NewService wires the profile service. archive may be nil, in which case
// uploaded résumés are not kept.
func NewService(repo profile.Repository, verifier auth.Verifier, parser resume.Parser, archive fsx.FileSystem) *Service {
	return &Service{
		repo:     repo,
		verifier: verifier,
		parser:   parser,
		archive:  archive,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// VerifyLogin verifies an identity token and returns the matching user,
// creating it on first sight
func (s *Service) VerifyLogin(ctx context.Context, req profile.VerifyLoginRequest) (*profile.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	claims, err := s.verifier.Verify(ctx, strings.TrimSpace(req.IDToken))
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetByUID(ctx, claims.UID)
	if err == nil {
		resp := profile.NewLoginResponse(user, false)
		return &resp, nil
	}
	if !errx.IsCode(err, profile.CodeUserNotFound) {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = claims.Name
	}
	now := s.now()
	user = &profile.User{
		UID:       claims.UID,
		Email:     claims.Email,
		Name:      name,
		Role:      iam.RoleUser,
		Provider:  claims.Provider,
		Profile:   profile.Profile{}.Normalize(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		// a concurrent first login won the insert
		if errx.IsCode(err, profile.CodeUserAlreadyExists) {
			existing, getErr := s.repo.GetByUID(ctx, claims.UID)
			if getErr != nil {
				return nil, getErr
			}
			resp := profile.NewLoginResponse(existing, false)
			return &resp, nil
		}
		return nil, err
	}

	logx.Infof("created user %s (%s)", user.UID, user.Provider)
	resp := profile.NewLoginResponse(user, true)
	return &resp, nil
}

func (s *Service) GetCurrentUser(ctx context.Context, uid kernel.UserID) (*profile.User, error) {
	return s.repo.GetByUID(ctx, uid)
}

// UpdateProfile replaces the caller's profile
func (s *Service) UpdateProfile(ctx context.Context, uid kernel.UserID, p profile.Profile) (*profile.User, error) {
	p = p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return s.repo.UpdateProfile(ctx, uid, p)
}

// MapResume parses an uploaded résumé into a profile without saving it
func (s *Service) MapResume(ctx context.Context, uid kernel.UserID, upload resume.Upload) (*profile.Profile, error) {
	if err := upload.Validate(); err != nil {
		return nil, err
	}

	s.archiveUpload(ctx, uid, upload)

	doc, err := s.parser.Parse(ctx, upload)
	if err != nil {
		return nil, err
	}
	p := doc.Profile.Normalize()
	return &p, nil
}

// archiveUpload keeps a copy of the upload. Failures are logged only.
func (s *Service) archiveUpload(ctx context.Context, uid kernel.UserID, upload resume.Upload) {
	if s.archive == nil {
		return
	}
	owner := "anonymous"
	if !uid.IsEmpty() {
		owner = uid.String()
	}
	path := fmt.Sprintf("%s/%s%s", owner, uuid.NewString(), upload.Ext())
	if err := s.archive.WriteFile(ctx, path, upload.Data); err != nil {
		logx.Warnf("archive résumé %s: %v", path, err)
	}
}
