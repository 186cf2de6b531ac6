package profilesrv

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/Abraxas-365/careerlens/careers/profile"
	"github.com/Abraxas-365/careerlens/careers/resume"
	"github.com/Abraxas-365/careerlens/careers/skill"
	"github.com/Abraxas-365/careerlens/pkg/errx"
	"github.com/Abraxas-365/careerlens/pkg/iam"
	"github.com/Abraxas-365/careerlens/pkg/iam/auth"
	"github.com/Abraxas-365/careerlens/pkg/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	mu    sync.Mutex
	users map[kernel.UserID]*profile.User
	// raceOnCreate simulates another request inserting the same uid first
	raceOnCreate bool
}

func newMemRepo() *memRepo {
	return &memRepo{users: map[kernel.UserID]*profile.User{}}
}

func (r *memRepo) GetByUID(_ context.Context, uid kernel.UserID) (*profile.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[uid]
	if !ok {
		return nil, profile.ErrUserNotFound()
	}
	cp := *u
	return &cp, nil
}

func (r *memRepo) Create(_ context.Context, u *profile.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.raceOnCreate {
		winner := *u
		winner.Name = "first request"
		r.users[u.UID] = &winner
		return profile.ErrUserAlreadyExists()
	}
	if _, ok := r.users[u.UID]; ok {
		return profile.ErrUserAlreadyExists()
	}
	cp := *u
	r.users[u.UID] = &cp
	return nil
}

func (r *memRepo) UpdateProfile(_ context.Context, uid kernel.UserID, p profile.Profile) (*profile.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[uid]
	if !ok {
		return nil, profile.ErrUserNotFound()
	}
	u.Profile = p
	cp := *u
	return &cp, nil
}

type fakeVerifier struct{}

func (fakeVerifier) Verify(_ context.Context, token string) (*auth.Claims, error) {
	if !strings.HasPrefix(token, "valid:") {
		return nil, auth.ErrInvalidToken()
	}
	uid := strings.TrimPrefix(token, "valid:")
	return &auth.Claims{
		UID:      kernel.NewUserID(uid),
		Email:    kernel.Email(uid + "@example.com"),
		Name:     "Token Name",
		Role:     iam.RoleUser,
		Provider: "google.com",
	}, nil
}

type fakeParser struct {
	calls int
	err   error
}

func (p *fakeParser) Parse(_ context.Context, _ resume.Upload) (*resume.Document, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return &resume.Document{Profile: profile.Profile{
		FullName: "Ada",
		Skills:   []profile.Skill{{Name: "Python"}},
	}}, nil
}

type fakeArchive struct {
	paths []string
	err   error
}

func (f *fakeArchive) WriteFile(_ context.Context, path string, _ []byte) error {
	f.paths = append(f.paths, path)
	return f.err
}
func (f *fakeArchive) ReadFile(context.Context, string) ([]byte, error) { return nil, nil }
func (f *fakeArchive) DeleteFile(context.Context, string) error         { return nil }

func TestVerifyLoginCreatesUserOnce(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, fakeVerifier{}, &fakeParser{}, nil)
	ctx := context.Background()

	first, err := svc.VerifyLogin(ctx, profile.VerifyLoginRequest{IDToken: "valid:u1", Name: "Ada"})
	require.NoError(t, err)
	assert.True(t, first.Created)
	assert.Equal(t, "u1", first.UID)
	assert.Equal(t, "Ada", first.Name)
	assert.Equal(t, "user", first.Role)
	assert.Equal(t, "google.com", first.Provider)

	second, err := svc.VerifyLogin(ctx, profile.VerifyLoginRequest{IDToken: "valid:u1", Name: "Someone Else"})
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, "Ada", second.Name)
	assert.Len(t, repo.users, 1)
}

func TestVerifyLoginFallsBackToTokenName(t *testing.T) {
	svc := NewService(newMemRepo(), fakeVerifier{}, &fakeParser{}, nil)

	resp, err := svc.VerifyLogin(context.Background(), profile.VerifyLoginRequest{IDToken: "valid:u2"})
	require.NoError(t, err)
	assert.Equal(t, "Token Name", resp.Name)
}

func TestVerifyLoginConcurrentCreate(t *testing.T) {
	repo := newMemRepo()
	repo.raceOnCreate = true
	svc := NewService(repo, fakeVerifier{}, &fakeParser{}, nil)

	resp, err := svc.VerifyLogin(context.Background(), profile.VerifyLoginRequest{IDToken: "valid:u3"})
	require.NoError(t, err)
	assert.False(t, resp.Created)
	assert.Equal(t, "first request", resp.Name)
}

func TestVerifyLoginErrors(t *testing.T) {
	svc := NewService(newMemRepo(), fakeVerifier{}, &fakeParser{}, nil)
	ctx := context.Background()

	_, err := svc.VerifyLogin(ctx, profile.VerifyLoginRequest{})
	assert.True(t, errx.IsCode(err, profile.CodeMissingIDToken))

	_, err = svc.VerifyLogin(ctx, profile.VerifyLoginRequest{IDToken: "forged"})
	assert.True(t, errx.IsCode(err, auth.CodeInvalidToken))
}

func TestUpdateProfile(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, fakeVerifier{}, &fakeParser{}, nil)
	ctx := context.Background()

	_, err := svc.UpdateProfile(ctx, "ghost", profile.Profile{})
	assert.True(t, errx.IsCode(err, profile.CodeUserNotFound))

	_, err = svc.VerifyLogin(ctx, profile.VerifyLoginRequest{IDToken: "valid:u1"})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, "u1", profile.Profile{
		Summary:     "Analyst",
		Skills:      []profile.Skill{{Name: "SQL"}},
		Experiences: []profile.Experience{{Company: "Acme", EndDate: "2024", Current: true}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Analyst", updated.Profile.Summary)
	assert.Equal(t, skill.LevelIntermediate, updated.Profile.Skills[0].Level)
	assert.Empty(t, updated.Profile.Experiences[0].EndDate)

	_, err = svc.UpdateProfile(ctx, "u1", profile.Profile{Skills: []profile.Skill{{Name: "Go", Level: "Wizard"}}})
	assert.True(t, errx.IsCode(err, skill.CodeInvalidLevel))
}

func TestMapResume(t *testing.T) {
	parser := &fakeParser{}
	archive := &fakeArchive{err: errors.New("bucket gone")}
	svc := NewService(newMemRepo(), fakeVerifier{}, parser, archive)

	p, err := svc.MapResume(context.Background(), "u1", resume.Upload{Filename: "cv.pdf", Data: []byte("%PDF")})
	require.NoError(t, err, "archive failures do not fail the mapping")
	assert.Equal(t, "Ada", p.FullName)
	assert.Equal(t, skill.LevelIntermediate, p.Skills[0].Level)

	require.Len(t, archive.paths, 1)
	assert.True(t, strings.HasPrefix(archive.paths[0], "u1/"))
	assert.True(t, strings.HasSuffix(archive.paths[0], ".pdf"))
}

func TestMapResumeRejectsBadUploadBeforeParsing(t *testing.T) {
	parser := &fakeParser{}
	svc := NewService(newMemRepo(), fakeVerifier{}, parser, nil)

	_, err := svc.MapResume(context.Background(), "", resume.Upload{Filename: "cv.exe", Data: []byte("MZ")})
	assert.True(t, errx.IsCode(err, resume.CodeInvalidFileFormat))
	assert.Zero(t, parser.calls)
}
