package users

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	custom_error "github.com/voycel/Asset-Tracker-sub000/pkg/errors"
	"github.com/voycel/Asset-Tracker-sub000/pkg/models"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) PersistUser(req models.UserRequest, hashedPassword []byte) error {
	args := m.Called(req, hashedPassword)
	return args.Error(0)
}

func (m *MockUserRepository) GetUser(id int) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUsers() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(id int, changes goqu.Record) error {
	args := m.Called(id, changes)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func setupTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("userID", 1)
	c.Set("role", "admin")
	return c, w
}

func TestRegisterUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockRepo := new(MockUserRepository)
	handler := NewHandler(mockRepo)

	tests := []struct {
		name           string
		payload        models.UserRequest
		setupMock      func()
		expectedStatus int
	}{
		{
			name: "successful registration",
			payload: models.UserRequest{
				Username: "testuser",
				Password: "password123",
				Role:     "user",
			},
			setupMock: func() {
				mockRepo.On("PersistUser", mock.MatchedBy(func(req models.UserRequest) bool {
					return req.Username == "testuser" && req.Role == "user"
				}), mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "defaults missing role to user",
			payload: models.UserRequest{
				Username: "plainuser",
				Password: "password123",
			},
			setupMock: func() {
				mockRepo.On("PersistUser", mock.MatchedBy(func(req models.UserRequest) bool {
					return req.Role == "user"
				}), mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "invalid role",
			payload: models.UserRequest{
				Username: "testuser",
				Password: "password123",
				Role:     "superuser",
			},
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "username already taken",
			payload: models.UserRequest{
				Username: "testuser",
				Password: "password123",
				Role:     "user",
			},
			setupMock: func() {
				mockRepo.On("PersistUser", mock.Anything, mock.Anything).
					Return(custom_error.NewConflictError("username testuser already taken"))
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo.ExpectedCalls = nil
			tt.setupMock()
			c, w := setupTestContext()

			body, _ := json.Marshal(tt.payload)
			c.Request = httptest.NewRequest("POST", "/users", bytes.NewBuffer(body))

			handler.RegisterUser(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUpdateUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockRepo := new(MockUserRepository)
	handler := NewHandler(mockRepo)

	existing := &models.User{ID: 1, Username: "testuser", Role: "user"}

	tests := []struct {
		name           string
		userID         string
		payload        updateUserRequest
		setupMock      func()
		expectedStatus int
	}{
		{
			name:    "successful role update",
			userID:  "1",
			payload: updateUserRequest{Role: stringPtr("moderator")},
			setupMock: func() {
				mockRepo.On("GetUser", 1).Return(existing, nil).Once()
				mockRepo.On("UpdateUser", 1, mock.MatchedBy(func(changes goqu.Record) bool {
					return changes["role"] == "moderator"
				})).Return(nil)
				mockRepo.On("GetUser", 1).Return(&models.User{
					ID: 1, Username: "testuser", Role: "moderator",
				}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:    "password too short",
			userID:  "1",
			payload: updateUserRequest{Password: stringPtr("123")},
			setupMock: func() {
				mockRepo.On("GetUser", 1).Return(existing, nil)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:    "no changes returns current user",
			userID:  "1",
			payload: updateUserRequest{},
			setupMock: func() {
				mockRepo.On("GetUser", 1).Return(existing, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:    "user not found",
			userID:  "999",
			payload: updateUserRequest{Role: stringPtr("admin")},
			setupMock: func() {
				mockRepo.On("GetUser", 999).Return(nil, custom_error.NewNotFoundError("user", 999))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo.ExpectedCalls = nil
			tt.setupMock()
			c, w := setupTestContext()

			body, _ := json.Marshal(tt.payload)
			c.Request = httptest.NewRequest("PATCH", "/users/"+tt.userID, bytes.NewBuffer(body))
			c.Params = []gin.Param{{Key: "id", Value: tt.userID}}

			handler.UpdateUser(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestDeleteUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockRepo := new(MockUserRepository)
	handler := NewHandler(mockRepo)

	tests := []struct {
		name           string
		userID         string
		setupMock      func()
		expectedStatus int
	}{
		{
			name:   "successful deletion",
			userID: "2",
			setupMock: func() {
				mockRepo.On("DeleteUser", 2).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "cannot delete own account",
			userID:         "1",
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid user ID",
			userID:         "invalid",
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "user not found",
			userID: "999",
			setupMock: func() {
				mockRepo.On("DeleteUser", 999).Return(custom_error.NewNotFoundError("user", 999))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo.ExpectedCalls = nil
			tt.setupMock()
			c, w := setupTestContext()

			c.Request = httptest.NewRequest("DELETE", "/users/"+tt.userID, nil)
			c.Params = []gin.Param{{Key: "id", Value: tt.userID}}

			handler.DeleteUser(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestGetUserList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockRepo := new(MockUserRepository)
	handler := NewHandler(mockRepo)

	mockRepo.On("GetUsers").Return([]models.User{
		{ID: 1, Username: "user1"},
		{ID: 2, Username: "user2"},
	}, nil)

	c, w := setupTestContext()
	c.Request = httptest.NewRequest("GET", "/users", nil)

	handler.GetUserList(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var users []models.User
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	assert.Len(t, users, 2)
}

func stringPtr(s string) *string {
	return &s
}
