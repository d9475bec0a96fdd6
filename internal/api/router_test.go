package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peershare/item-sharing-backend/internal/api"
	"github.com/peershare/item-sharing-backend/internal/auth"
	"github.com/peershare/item-sharing-backend/internal/booking"
	bookingHttp "github.com/peershare/item-sharing-backend/internal/booking/http"
	"github.com/peershare/item-sharing-backend/internal/comment"
	"github.com/peershare/item-sharing-backend/internal/item"
	itemHttp "github.com/peershare/item-sharing-backend/internal/item/http"
	"github.com/peershare/item-sharing-backend/internal/itemrequest"
	"github.com/peershare/item-sharing-backend/internal/photo"
	"github.com/peershare/item-sharing-backend/internal/pkg/response"
	"github.com/peershare/item-sharing-backend/internal/pkg/storage"
	"github.com/peershare/item-sharing-backend/internal/user"
	userHttp "github.com/peershare/item-sharing-backend/internal/user/http"
)

// newTestRouter assembles the full router over in-memory repositories.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hasher := auth.NewBcryptPasswordHasherWithCost(4)
	jwtManager := auth.NewJWTManager("test-secret", 15*time.Minute)

	userSvc := user.NewService(user.NewMemoryRepository(), hasher)
	itemSvc := item.NewService(item.NewMemoryRepository(), userSvc)
	requestSvc := itemrequest.NewService(itemrequest.NewMemoryRepository(), userSvc)
	bookingSvc := booking.NewService(booking.NewMemoryRepository(), userSvc, itemSvc, nil)
	commentSvc := comment.NewService(comment.NewMemoryRepository(), itemSvc, userSvc, bookingSvc)

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	photoSvc := photo.NewService(photo.NewMemoryRepository(), itemSvc, store)

	return api.NewRouter(api.Config{
		UserService:        userSvc,
		ItemService:        itemSvc,
		ItemRequestService: requestSvc,
		BookingService:     bookingSvc,
		CommentService:     commentSvc,
		PhotoService:       photoSvc,
		JWTManager:         jwtManager,
	})
}

func executeRequest(t *testing.T, router *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// registerAndLogin creates a user through the API and returns its
// profile and access token.
func registerAndLogin(t *testing.T, router *gin.Engine, email, name string) (userHttp.UserResponse, string) {
	t.Helper()

	w := executeRequest(t, router, "POST", "/v1/auth/register", userHttp.RegisterRequest{
		Email:    email,
		Password: "password1",
		Name:     name,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var u userHttp.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &u))

	w = executeRequest(t, router, "POST", "/v1/auth/login", userHttp.LoginRequest{
		Email:    email,
		Password: "password1",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var tok userHttp.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tok))
	return u, tok.AccessToken
}

func createItem(t *testing.T, router *gin.Engine, token, name string, available bool) itemHttp.ItemResponse {
	t.Helper()

	w := executeRequest(t, router, "POST", "/v1/items", itemHttp.CreateItemRequest{
		Name:        name,
		Description: name + " description",
		Available:   &available,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var it itemHttp.ItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &it))
	return it
}

func TestAuthFlow(t *testing.T) {
	router := newTestRouter(t)

	t.Run("register login me", func(t *testing.T) {
		u, token := registerAndLogin(t, router, "alice@example.com", "Alice")

		w := executeRequest(t, router, "GET", "/v1/me", nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		var me userHttp.UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
		assert.Equal(t, u.ID, me.ID)
	})

	t.Run("missing token", func(t *testing.T) {
		w := executeRequest(t, router, "GET", "/v1/me", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("duplicate registration conflicts", func(t *testing.T) {
		w := executeRequest(t, router, "POST", "/v1/auth/register", userHttp.RegisterRequest{
			Email:    "alice@example.com",
			Password: "password1",
			Name:     "Alice Again",
		}, "")
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := executeRequest(t, router, "POST", "/v1/auth/login", userHttp.LoginRequest{
			Email:    "alice@example.com",
			Password: "wrong-password",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestItemEndpoints(t *testing.T) {
	router := newTestRouter(t)
	_, ownerToken := registerAndLogin(t, router, "owner@example.com", "Owner")
	_, otherToken := registerAndLogin(t, router, "other@example.com", "Other")

	it := createItem(t, router, ownerToken, "Pressure Washer", true)
	createItem(t, router, ownerToken, "Broken Washer", false)

	t.Run("search finds available items only", func(t *testing.T) {
		w := executeRequest(t, router, "GET", "/v1/items/search?text=washer", nil, otherToken)
		require.Equal(t, http.StatusOK, w.Code)

		var page response.PageResponse[itemHttp.ItemResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		require.Equal(t, 1, page.Total)
		assert.Equal(t, it.ID, page.Items[0].ID)
	})

	t.Run("non-owner cannot update", func(t *testing.T) {
		name := "Hijacked"
		w := executeRequest(t, router, "PATCH", "/v1/items/"+it.ID, itemHttp.UpdateItemRequest{Name: &name}, otherToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("owner lists own items", func(t *testing.T) {
		w := executeRequest(t, router, "GET", "/v1/items", nil, ownerToken)
		require.Equal(t, http.StatusOK, w.Code)

		var page response.PageResponse[itemHttp.ItemResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		assert.Equal(t, 2, page.Total)
	})
}

func TestBookingEndpoints(t *testing.T) {
	router := newTestRouter(t)
	owner, ownerToken := registerAndLogin(t, router, "owner@example.com", "Owner")
	booker, bookerToken := registerAndLogin(t, router, "booker@example.com", "Booker")
	_, strangerToken := registerAndLogin(t, router, "stranger@example.com", "Stranger")
	_ = owner

	it := createItem(t, router, ownerToken, "Camera", true)

	start := time.Now().UTC().Add(24 * time.Hour)
	end := start.Add(48 * time.Hour)

	var bookingID string

	t.Run("booker creates booking", func(t *testing.T) {
		w := executeRequest(t, router, "POST", "/v1/bookings", bookingHttp.CreateBookingRequest{
			ItemID:    it.ID,
			StartTime: start,
			EndTime:   end,
		}, bookerToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var b bookingHttp.BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
		assert.Equal(t, "waiting", b.Status)
		assert.Equal(t, booker.ID, b.Booker.ID)
		bookingID = b.ID
	})

	t.Run("owner cannot book own item", func(t *testing.T) {
		w := executeRequest(t, router, "POST", "/v1/bookings", bookingHttp.CreateBookingRequest{
			ItemID:    it.ID,
			StartTime: start,
			EndTime:   end,
		}, ownerToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("stranger cannot view booking", func(t *testing.T) {
		w := executeRequest(t, router, "GET", "/v1/bookings/"+bookingID, nil, strangerToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("booker cannot decide", func(t *testing.T) {
		w := executeRequest(t, router, "PATCH", "/v1/bookings/"+bookingID+"?approved=true", nil, bookerToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("owner approves", func(t *testing.T) {
		w := executeRequest(t, router, "PATCH", "/v1/bookings/"+bookingID+"?approved=true", nil, ownerToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var b bookingHttp.BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
		assert.Equal(t, "approved", b.Status)
	})

	t.Run("replayed decision conflicts", func(t *testing.T) {
		w := executeRequest(t, router, "PATCH", "/v1/bookings/"+bookingID+"?approved=false", nil, ownerToken)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("booker lists own bookings", func(t *testing.T) {
		w := executeRequest(t, router, "GET", "/v1/bookings?state=future", nil, bookerToken)
		require.Equal(t, http.StatusOK, w.Code)

		var page response.PageResponse[bookingHttp.BookingResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		require.Equal(t, 1, page.Total)
		assert.Equal(t, bookingID, page.Items[0].ID)
	})

	t.Run("owner lists incoming bookings", func(t *testing.T) {
		w := executeRequest(t, router, "GET", "/v1/bookings/owner", nil, ownerToken)
		require.Equal(t, http.StatusOK, w.Code)

		var page response.PageResponse[bookingHttp.BookingResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		assert.Equal(t, 1, page.Total)
	})

	t.Run("invalid state filter", func(t *testing.T) {
		w := executeRequest(t, router, "GET", "/v1/bookings?state=nonsense", nil, bookerToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("booking in the past is rejected", func(t *testing.T) {
		w := executeRequest(t, router, "POST", "/v1/bookings", bookingHttp.CreateBookingRequest{
			ItemID:    it.ID,
			StartTime: time.Now().UTC().Add(-time.Hour),
			EndTime:   time.Now().UTC().Add(time.Hour),
		}, bookerToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("booker cancels a fresh booking", func(t *testing.T) {
		w := executeRequest(t, router, "POST", "/v1/bookings", bookingHttp.CreateBookingRequest{
			ItemID:    it.ID,
			StartTime: start.Add(100 * time.Hour),
			EndTime:   end.Add(100 * time.Hour),
		}, bookerToken)
		require.Equal(t, http.StatusCreated, w.Code)

		var b bookingHttp.BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))

		w = executeRequest(t, router, "PATCH", "/v1/bookings/"+b.ID+"/cancel", nil, bookerToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
		assert.Equal(t, "canceled", b.Status)
	})
}

func TestItemRequestEndpoints(t *testing.T) {
	router := newTestRouter(t)
	_, token := registerAndLogin(t, router, "requestor@example.com", "Requestor")
	_, otherToken := registerAndLogin(t, router, "browser@example.com", "Browser")

	w := executeRequest(t, router, "POST", "/v1/requests", map[string]string{
		"description": "Looking for a telescope",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = executeRequest(t, router, "GET", "/v1/requests", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "telescope")

	t.Run("others browse requests", func(t *testing.T) {
		w := executeRequest(t, router, "GET", "/v1/requests/all", nil, otherToken)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "telescope")
	})

	t.Run("own requests are excluded from all", func(t *testing.T) {
		w := executeRequest(t, router, "GET", "/v1/requests/all", nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		var page response.PageResponse[json.RawMessage]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		assert.Zero(t, page.Total)
	})
}

func TestCommentEndpoints(t *testing.T) {
	router := newTestRouter(t)
	_, ownerToken := registerAndLogin(t, router, "owner@example.com", "Owner")
	_, borrowerToken := registerAndLogin(t, router, "borrower@example.com", "Borrower")

	it := createItem(t, router, ownerToken, "Tent", true)

	t.Run("comment without a finished booking is rejected", func(t *testing.T) {
		w := executeRequest(t, router, "POST", "/v1/items/"+it.ID+"/comments", map[string]string{
			"text": "Held up in the rain",
		}, borrowerToken)
		assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})

	t.Run("anyone may read comments", func(t *testing.T) {
		w := executeRequest(t, router, "GET", "/v1/items/"+it.ID+"/comments", nil, borrowerToken)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "items")
	})

	t.Run("unknown item", func(t *testing.T) {
		w := executeRequest(t, router, "GET", "/v1/items/00000000-0000-0000-0000-000000000000/comments", nil, borrowerToken)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUnknownBookingReturnsNotFound(t *testing.T) {
	router := newTestRouter(t)
	_, token := registerAndLogin(t, router, "user@example.com", "User")

	path := fmt.Sprintf("/v1/bookings/%s", "00000000-0000-0000-0000-000000000000")
	w := executeRequest(t, router, "GET", path, nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
