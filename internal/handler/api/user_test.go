//go:build unit

package api_test

import (
	"net/http"
	"strings"
	"testing"

	"table-booking/internal/domain/user"
	"table-booking/internal/handler/api"
	resdto "table-booking/internal/handler/dto/response"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/usecase/queries"
	"table-booking/tests/common/builder"
	"table-booking/tests/common/httptest"
	"table-booking/tests/common/testutil"
	commandsmock "table-booking/tests/mock/commands"
	queriesmock "table-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type UserHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockUserCommands
	mockQueries  *queriesmock.MockUserQueries
}

func (s *UserHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockUserCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockUserQueries(s.mockCtrl)
	h := api.NewUserHandler(s.mockCommands, s.mockQueries)

	s.router.POST("/users", h.CreateUser)
	s.router.GET("/users", h.ListUsers)
}

func (s *UserHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestUserHandlerSuite(t *testing.T) {
	suite.Run(t, new(UserHandlerTestSuite))
}

func (s *UserHandlerTestSuite) TestCreateUser() {
	url := "/users"
	b := builder.NewUserBuilder()
	reqBody := b.BuildRequest()
	created := b.MustBuildDomain()

	s.Run("success: returns 201 with normalised email", func() {
		draft, err := b.BuildDraft()
		s.Require().NoError(err)
		s.mockCommands.EXPECT().RegisterUser(gomock.Any(), draft).Return(created, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)

		var response resdto.UserResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(int64(1), response.ID)
		s.Equal("mario.rossi@example.com", response.Email)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing field: name", mutate: testutil.Field("name", nil)},
			{name: "missing field: email", mutate: testutil.Field("email", nil)},
			{name: "invalid email", mutate: testutil.Field("email", "not-an-email")},
			{name: "name too long (101 chars)", mutate: testutil.Field("name", strings.Repeat("a", 101))},
			{name: "blank name", mutate: testutil.Field("name", "   ")},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "GENERAL_VALIDATION_FAILED")
			})
		}
	})

	s.Run("error: 409 when the email is taken", func() {
		s.mockCommands.EXPECT().RegisterUser(gomock.Any(), gomock.Any()).
			Return(nil, errs.NewAppError(errs.CodeUserEmailAlreadyExists)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "USER_EMAIL_ALREADY_EXISTS")
	})

	s.Run("error: 500 when the store fails", func() {
		s.mockCommands.EXPECT().RegisterUser(gomock.Any(), gomock.Any()).
			Return(nil, errs.FromCause(errs.CodeUserCreationFailed, assertErr)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "USER_CREATION_FAILED")
	})
}

func (s *UserHandlerTestSuite) TestListUsers() {
	view := queries.ToUserView(builder.NewUserBuilder().MustBuildDomain())

	s.Run("success: lists everyone without a filter", func() {
		s.mockQueries.EXPECT().ListUsers(gomock.Any(), gomock.Nil()).
			Return([]queries.UserView{view}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/users", nil)

		var response []resdto.UserResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
	})

	s.Run("success: filters by normalised email", func() {
		want, err := user.NewEmail("mario.rossi@example.com")
		s.Require().NoError(err)
		s.mockQueries.EXPECT().ListUsers(gomock.Any(), &want).
			Return([]queries.UserView{view}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/users?email=Mario.Rossi@Example.com", nil)

		var response []resdto.UserResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().Len(response, 1)
		s.Equal(view.Email, response[0].Email)
	})

	s.Run("success: returns an empty array when nobody matches", func() {
		s.mockQueries.EXPECT().ListUsers(gomock.Any(), gomock.Any()).
			Return([]queries.UserView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/users?email=nobody@example.com", nil)

		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`[]`, rec.Body.String())
	})

	s.Run("error: 400 on a malformed email filter", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/users?email=broken", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "GENERAL_VALIDATION_FAILED")
	})

	s.Run("error: 500 when listing fails", func() {
		s.mockQueries.EXPECT().ListUsers(gomock.Any(), gomock.Any()).
			Return(nil, errs.FromCause(errs.CodeUserListFailed, assertErr)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/users", nil)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "USER_LIST_FAILED")
	})
}
