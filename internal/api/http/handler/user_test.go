package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpctx "github.com/Beboto/Streamify-Backend/internal/api/http/context"
	"github.com/Beboto/Streamify-Backend/internal/model"
	"github.com/Beboto/Streamify-Backend/internal/service"
	"github.com/Beboto/Streamify-Backend/internal/testutil"
)

type accountServiceStub struct {
	profile          model.Profile
	changePassErr    error
	changedPasswords [][2]string
	updatedUploads   []service.Upload
	updateErr        error
}

func (s *accountServiceStub) ChangePassword(_ context.Context, _ uuid.UUID, oldPassword, newPassword string) error {
	s.changedPasswords = append(s.changedPasswords, [2]string{oldPassword, newPassword})
	return s.changePassErr
}

func (s *accountServiceStub) UpdateAccount(_ context.Context, _ uuid.UUID, fullName, email string) (model.Profile, error) {
	if s.updateErr != nil {
		return model.Profile{}, s.updateErr
	}
	p := s.profile
	p.FullName = fullName
	p.Email = email
	return p, nil
}

func (s *accountServiceStub) UpdateAvatar(_ context.Context, _ uuid.UUID, file service.Upload) (model.Profile, error) {
	s.updatedUploads = append(s.updatedUploads, file)
	return s.profile, s.updateErr
}

func (s *accountServiceStub) UpdateCoverImage(_ context.Context, _ uuid.UUID, file service.Upload) (model.Profile, error) {
	s.updatedUploads = append(s.updatedUploads, file)
	return s.profile, s.updateErr
}

func authedRequest(method, target string, body *strings.Reader, profile model.Profile) *http.Request {
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, body)
	}
	cm := httpctx.NewManager()
	return req.WithContext(cm.SetUserToContext(req.Context(), profile))
}

func TestUser_CurrentUser(t *testing.T) {
	profile := model.Profile{ID: uuid.New(), Username: "arthur", Email: "arthur@example.com"}
	h := NewUser(&accountServiceStub{}, httpctx.NewManager(), testutil.MakeNoopLogger())

	req := authedRequest(http.MethodGet, "/api/v1/users/current-user", nil, profile)
	rec := httptest.NewRecorder()

	h.CurrentUser(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.True(t, resp.Success)
	assert.Contains(t, rec.Body.String(), "arthur@example.com")
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestUser_CurrentUser_NoContextUser(t *testing.T) {
	h := NewUser(&accountServiceStub{}, httpctx.NewManager(), testutil.MakeNoopLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/current-user", nil)
	rec := httptest.NewRecorder()

	h.CurrentUser(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUser_ChangePassword(t *testing.T) {
	profile := model.Profile{ID: uuid.New()}
	svc := &accountServiceStub{}
	h := NewUser(svc, httpctx.NewManager(), testutil.MakeNoopLogger())

	body := strings.NewReader(`{"oldPassword":"old-secret","newPassword":"new-secret"}`)
	req := authedRequest(http.MethodPost, "/api/v1/users/change-password", body, profile)
	rec := httptest.NewRecorder()

	h.ChangePassword(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, svc.changedPasswords, 1)
	assert.Equal(t, [2]string{"old-secret", "new-secret"}, svc.changedPasswords[0])
}

func TestUser_ChangePassword_WrongOldPassword(t *testing.T) {
	profile := model.Profile{ID: uuid.New()}
	svc := &accountServiceStub{changePassErr: model.ErrInvalidCredentials}
	h := NewUser(svc, httpctx.NewManager(), testutil.MakeNoopLogger())

	body := strings.NewReader(`{"oldPassword":"wrong","newPassword":"new-secret"}`)
	req := authedRequest(http.MethodPost, "/api/v1/users/change-password", body, profile)
	rec := httptest.NewRecorder()

	h.ChangePassword(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid old password", decodeEnvelope(t, rec).Message)
}

func TestUser_ChangePassword_MissingFields(t *testing.T) {
	profile := model.Profile{ID: uuid.New()}
	svc := &accountServiceStub{}
	h := NewUser(svc, httpctx.NewManager(), testutil.MakeNoopLogger())

	body := strings.NewReader(`{"oldPassword":"old-secret"}`)
	req := authedRequest(http.MethodPost, "/api/v1/users/change-password", body, profile)
	rec := httptest.NewRecorder()

	h.ChangePassword(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.changedPasswords)
}

func TestUser_UpdateAccount(t *testing.T) {
	profile := model.Profile{ID: uuid.New(), Username: "arthur"}
	svc := &accountServiceStub{profile: profile}
	h := NewUser(svc, httpctx.NewManager(), testutil.MakeNoopLogger())

	body := strings.NewReader(`{"fullName":"Arthur Morgan","email":"new@example.com"}`)
	req := authedRequest(http.MethodPatch, "/api/v1/users/update-account", body, profile)
	rec := httptest.NewRecorder()

	h.UpdateAccount(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "new@example.com")
}

func TestUser_UpdateAccount_MissingFields(t *testing.T) {
	profile := model.Profile{ID: uuid.New()}
	h := NewUser(&accountServiceStub{}, httpctx.NewManager(), testutil.MakeNoopLogger())

	body := strings.NewReader(`{"fullName":"  ","email":"new@example.com"}`)
	req := authedRequest(http.MethodPatch, "/api/v1/users/update-account", body, profile)
	rec := httptest.NewRecorder()

	h.UpdateAccount(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUser_UpdateAvatar(t *testing.T) {
	profile := model.Profile{ID: uuid.New()}
	svc := &accountServiceStub{profile: profile}
	h := NewUser(svc, httpctx.NewManager(), testutil.MakeNoopLogger())

	buf, contentType := multipartBody(t, nil, map[string]string{"avatar": "new-avatar.png"})
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/users/avatar", buf)
	req.Header.Set("Content-Type", contentType)
	cm := httpctx.NewManager()
	req = req.WithContext(cm.SetUserToContext(req.Context(), profile))
	rec := httptest.NewRecorder()

	h.UpdateAvatar(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, svc.updatedUploads, 1)
	assert.Equal(t, "new-avatar.png", svc.updatedUploads[0].Filename)
}

func TestUser_UpdateCoverImage_MissingFile(t *testing.T) {
	profile := model.Profile{ID: uuid.New()}
	svc := &accountServiceStub{}
	h := NewUser(svc, httpctx.NewManager(), testutil.MakeNoopLogger())

	buf, contentType := multipartBody(t, map[string]string{"unrelated": "field"}, nil)
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/users/cover-image", buf)
	req.Header.Set("Content-Type", contentType)
	cm := httpctx.NewManager()
	req = req.WithContext(cm.SetUserToContext(req.Context(), profile))
	rec := httptest.NewRecorder()

	h.UpdateCoverImage(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.updatedUploads)
}
