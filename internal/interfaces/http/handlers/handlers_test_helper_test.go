package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"tripcover.backend/internal/domain/entities"
	domainerrors "tripcover.backend/internal/domain/errors"
	"tripcover.backend/internal/interfaces/http/middleware"
	"tripcover.backend/internal/usecases"
)

// In-memory repository stubs backing real usecases, so handler tests
// exercise the full request path without a database.

type verificationRepoStub struct {
	records map[uuid.UUID]*entities.VerificationRecord
}

func newVerificationRepoStub() *verificationRepoStub {
	return &verificationRepoStub{records: make(map[uuid.UUID]*entities.VerificationRecord)}
}

func (s *verificationRepoStub) Create(ctx context.Context, record *entities.VerificationRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	record.CreatedAt = time.Now()
	s.records[record.ID] = record
	return nil
}

func (s *verificationRepoStub) GetLiveByPrincipalID(ctx context.Context, principalID uuid.UUID) (*entities.VerificationRecord, error) {
	for _, r := range s.records {
		if r.PrincipalID == principalID && !r.ArchivedAt.Valid {
			return r, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *verificationRepoStub) GetLiveByPrincipalIDForUpdate(ctx context.Context, principalID uuid.UUID) (*entities.VerificationRecord, error) {
	return s.GetLiveByPrincipalID(ctx, principalID)
}

func (s *verificationRepoStub) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.VerificationStatus) error {
	r, ok := s.records[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	r.Status = status
	return nil
}

func (s *verificationRepoStub) Archive(ctx context.Context, id uuid.UUID) error {
	r, ok := s.records[id]
	if !ok || r.ArchivedAt.Valid {
		return domainerrors.ErrNotFound
	}
	r.ArchivedAt.SetValid(time.Now())
	return nil
}

func (s *verificationRepoStub) ListByStatus(ctx context.Context, status entities.VerificationStatus, limit, offset int) ([]*entities.VerificationRecord, int64, error) {
	var out []*entities.VerificationRecord
	for _, r := range s.records {
		if r.Status == status && !r.ArchivedAt.Valid {
			out = append(out, r)
		}
	}
	return out, int64(len(out)), nil
}

type walletRepoStub struct {
	wallets map[uuid.UUID]*entities.Wallet
}

func newWalletRepoStub() *walletRepoStub {
	return &walletRepoStub{wallets: make(map[uuid.UUID]*entities.Wallet)}
}

func (s *walletRepoStub) Create(ctx context.Context, wallet *entities.Wallet) error {
	for _, w := range s.wallets {
		if w.OwnerID == wallet.OwnerID {
			return domainerrors.ErrWalletAlreadyExists
		}
	}
	if wallet.ID == uuid.Nil {
		wallet.ID = uuid.New()
	}
	wallet.CreatedAt = time.Now()
	s.wallets[wallet.ID] = wallet
	return nil
}

func (s *walletRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*entities.Wallet, error) {
	w, ok := s.wallets[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return w, nil
}

func (s *walletRepoStub) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entities.Wallet, error) {
	return s.GetByID(ctx, id)
}

func (s *walletRepoStub) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*entities.Wallet, error) {
	for _, w := range s.wallets {
		if w.OwnerID == ownerID {
			return w, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *walletRepoStub) ApplyChange(ctx context.Context, id uuid.UUID, name string, network entities.Network, address string) error {
	w, ok := s.wallets[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	w.DisplayName = name
	w.Network = network
	w.Address = address
	w.UpdatedAt.SetValid(time.Now())
	return nil
}

type changeRepoStub struct {
	requests map[uuid.UUID]*entities.WalletChangeRequest
}

func newChangeRepoStub() *changeRepoStub {
	return &changeRepoStub{requests: make(map[uuid.UUID]*entities.WalletChangeRequest)}
}

func (s *changeRepoStub) Create(ctx context.Context, request *entities.WalletChangeRequest) error {
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	request.RequestedAt = time.Now()
	s.requests[request.ID] = request
	return nil
}

func (s *changeRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*entities.WalletChangeRequest, error) {
	r, ok := s.requests[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return r, nil
}

func (s *changeRepoStub) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entities.WalletChangeRequest, error) {
	return s.GetByID(ctx, id)
}

func (s *changeRepoStub) GetPendingByWalletID(ctx context.Context, walletID uuid.UUID) (*entities.WalletChangeRequest, error) {
	for _, r := range s.requests {
		if r.WalletID == walletID && r.Status == entities.ChangeRequestPending {
			return r, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *changeRepoStub) ListByWalletID(ctx context.Context, walletID uuid.UUID) ([]*entities.WalletChangeRequest, error) {
	var out []*entities.WalletChangeRequest
	for _, r := range s.requests {
		if r.WalletID == walletID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *changeRepoStub) ListByStatus(ctx context.Context, status entities.ChangeRequestStatus, limit, offset int) ([]*entities.WalletChangeRequest, int64, error) {
	var out []*entities.WalletChangeRequest
	for _, r := range s.requests {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out, int64(len(out)), nil
}

func (s *changeRepoStub) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.ChangeRequestStatus) error {
	r, ok := s.requests[id]
	if !ok || r.Status != entities.ChangeRequestPending {
		return domainerrors.ErrNotFound
	}
	r.Status = status
	r.DecidedAt.SetValid(time.Now())
	return nil
}

type nopUnitOfWork struct{}

func (nopUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type blobStoreStub struct{}

func (blobStoreStub) Upload(ctx context.Context, content io.Reader, fileName, contentType string) (string, error) {
	return "http://localhost:8080/files/stub-" + fileName, nil
}

// handlerEnv bundles the stubs with a routed gin engine. principal is
// the authenticated identity injected into each request; tests may swap
// it to act as a different caller.
type handlerEnv struct {
	router           *gin.Engine
	principal        uuid.UUID
	verificationRepo *verificationRepoStub
	walletRepo       *walletRepoStub
	changeRepo       *changeRepoStub
}

func newHandlerEnv(t *testing.T, principalID uuid.UUID) *handlerEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &handlerEnv{
		principal:        principalID,
		verificationRepo: newVerificationRepoStub(),
		walletRepo:       newWalletRepoStub(),
		changeRepo:       newChangeRepoStub(),
	}

	verificationUsecase := usecases.NewVerificationUsecase(env.verificationRepo, blobStoreStub{}, nopUnitOfWork{})
	walletUsecase := usecases.NewWalletUsecase(env.walletRepo, env.changeRepo, env.verificationRepo, nopUnitOfWork{})

	verificationHandler := NewVerificationHandler(verificationUsecase)
	walletHandler := NewWalletHandler(walletUsecase)
	adminHandler := NewAdminHandler(verificationUsecase, walletUsecase)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if env.principal != uuid.Nil {
			c.Set(middleware.PrincipalIDKey, env.principal)
		}
		c.Next()
	})

	v1 := r.Group("/api/v1")
	v1.POST("/verification/documents", verificationHandler.SubmitDocument)
	v1.GET("/verification/status", verificationHandler.GetStatus)
	v1.POST("/wallets", walletHandler.CreateWallet)
	v1.GET("/wallets", walletHandler.GetWallet)
	v1.POST("/wallets/:id/change-requests", walletHandler.RequestChange)
	v1.GET("/wallets/:id/change-requests", walletHandler.ListChangeRequests)

	admin := v1.Group("/admin")
	admin.GET("/verifications", adminHandler.ListVerifications)
	admin.POST("/verifications/:principalId/decision", adminHandler.DecideVerification)
	admin.GET("/change-requests", adminHandler.ListChangeRequests)
	admin.POST("/change-requests/:id/decision", adminHandler.DecideChangeRequest)

	env.router = r
	return env
}

func (e *handlerEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// uploadDocument posts a multipart document with an explicit part
// content type, the way a browser upload arrives.
func (e *handlerEnv) uploadDocument(t *testing.T, documentType, fileName, contentType string, size int) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="document"; filename="`+fileName+`"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("a"), size))
	require.NoError(t, err)

	require.NoError(t, mw.WriteField("documentType", documentType))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/verification/documents", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
