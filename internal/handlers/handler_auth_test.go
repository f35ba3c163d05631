package handlers_test

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rurasogoodo/notes_app/internal/apperrors"
	"github.com/rurasogoodo/notes_app/internal/core/domain"
	"github.com/rurasogoodo/notes_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) session() *domain.AccessTokenResult {
	return &domain.AccessTokenResult{
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresAt:    time.Date(2024, 6, 1, 12, 15, 0, 0, time.UTC),
	}
}

func (suite *HandlerTestSuite) TestRegister_Success() {
	req := dto.RegisterRequest{Email: "u@x.com", Username: "user", Password: "p1-password", ConfirmPassword: "p1-password"}
	suite.mockSession.On("Register", mock.Anything, req).
		Return(&domain.LoginResult{User: suite.user, Session: *suite.session()}, nil).Once()

	w := suite.do(http.MethodPost, "/api/auth/register", req, false)

	suite.Equal(http.StatusOK, w.Code)
	body := decode[dto.DataResponse[dto.LoginResponse]](suite, w)
	suite.Equal(suite.user.UserID, body.Data.User.UserID)
	suite.Equal("refresh", body.Data.AccessToken.RefreshToken)
	suite.NotContains(w.Body.String(), "passwordHash")
}

func (suite *HandlerTestSuite) TestRegister_ValidationErrorsListFields() {
	w := suite.do(http.MethodPost, "/api/auth/register", map[string]string{"email": "nope", "username": "u"}, false)

	suite.Equal(http.StatusBadRequest, w.Code)
	body := decode[dto.ErrorResponse](suite, w)
	suite.Equal(string(apperrors.KindValidation), body.Reason)
	suite.Contains(body.Fields, "email")
	suite.Contains(body.Fields, "password")
	suite.mockSession.AssertNotCalled(suite.T(), "Register", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestOverlongPasswordRejectedBeforeService() {
	long := strings.Repeat("a", 73)

	w := suite.do(http.MethodPost, "/api/auth/register", dto.RegisterRequest{
		Email: "u@x.com", Username: "user", Password: long, ConfirmPassword: long,
	}, false)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(decode[dto.ErrorResponse](suite, w).Fields, "password")

	w = suite.do(http.MethodPost, "/api/auth/recover", dto.RecoverAccountRequest{
		Token: "tok", Password: long, ConfirmPassword: long,
	}, false)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(decode[dto.ErrorResponse](suite, w).Fields, "password")

	suite.mockSession.AssertNotCalled(suite.T(), "Register", mock.Anything, mock.Anything)
	suite.mockRecover.AssertNotCalled(suite.T(), "RecoverAccount", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestRegister_ServiceErrorsMapToStatus() {
	cases := []struct {
		err    error
		status int
		reason apperrors.Kind
	}{
		{apperrors.ErrPasswordMismatch, http.StatusBadRequest, apperrors.KindPasswordMismatch},
		{apperrors.ErrEmailAlreadyExists, http.StatusBadRequest, apperrors.KindEmailAlreadyExists},
		{errors.New("db down"), http.StatusInternalServerError, apperrors.KindInternal},
	}
	req := dto.RegisterRequest{Email: "u@x.com", Username: "user", Password: "p1-password", ConfirmPassword: "p2-password"}
	for _, tc := range cases {
		suite.mockSession.On("Register", mock.Anything, req).Return(nil, tc.err).Once()

		w := suite.do(http.MethodPost, "/api/auth/register", req, false)

		suite.Equal(tc.status, w.Code)
		suite.Equal(string(tc.reason), decode[dto.ErrorResponse](suite, w).Reason)
		if tc.status == http.StatusInternalServerError {
			suite.NotContains(w.Body.String(), "db down")
		}
	}
}

func (suite *HandlerTestSuite) TestLogin() {
	suite.mockSession.On("Login", mock.Anything, "u@x.com", "p1-password").
		Return(&domain.LoginResult{User: suite.user, Session: *suite.session()}, nil).Once()
	suite.mockSession.On("Login", mock.Anything, "u@x.com", "wrong").
		Return(nil, apperrors.ErrInvalidCredentials).Once()

	w := suite.do(http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: "u@x.com", Password: "p1-password"}, false)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("access", decode[dto.DataResponse[dto.LoginResponse]](suite, w).Data.AccessToken.AccessToken)

	w = suite.do(http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: "u@x.com", Password: "wrong"}, false)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal(string(apperrors.KindInvalidCredentials), decode[dto.ErrorResponse](suite, w).Reason)
}

func (suite *HandlerTestSuite) TestRefreshAccessToken() {
	suite.mockSession.On("Refresh", mock.Anything, "r1").Return(suite.session(), nil).Once()
	suite.mockSession.On("Refresh", mock.Anything, "r1").Return(nil, apperrors.ErrRefreshTokenOrUserNotFound).Once()
	suite.mockSession.On("Refresh", mock.Anything, "old").Return(nil, apperrors.ErrRefreshTokenExpired).Once()

	w := suite.do(http.MethodPost, "/api/auth/accessToken", dto.AccessTokenRequest{RefreshToken: "r1"}, false)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("refresh", decode[dto.DataResponse[dto.AccessTokenResponse]](suite, w).Data.RefreshToken)

	w = suite.do(http.MethodPost, "/api/auth/accessToken", dto.AccessTokenRequest{RefreshToken: "r1"}, false)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.do(http.MethodPost, "/api/auth/accessToken", dto.AccessTokenRequest{RefreshToken: "old"}, false)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal(string(apperrors.KindRefreshTokenExpired), decode[dto.ErrorResponse](suite, w).Reason)
}

func (suite *HandlerTestSuite) TestMe_RequiresBearerToken() {
	w := suite.do(http.MethodGet, "/api/auth/me", nil, false)
	suite.Equal(http.StatusUnauthorized, w.Code)

	suite.mockSession.On("GetCurrentUser", mock.Anything, suite.user.UserID).Return(&suite.user, nil).Once()
	w = suite.do(http.MethodGet, "/api/auth/me", nil, true)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("u@x.com", decode[dto.DataResponse[dto.UserResponse]](suite, w).Data.Email)
}

func (suite *HandlerTestSuite) TestLogout() {
	suite.mockSession.On("Logout", mock.Anything, suite.user.UserID).Return(nil).Once()
	suite.mockSession.On("Logout", mock.Anything, suite.user.UserID).Return(apperrors.ErrRefreshTokenOrUserNotFound).Once()

	suite.Equal(http.StatusNoContent, suite.do(http.MethodDelete, "/api/auth/logout", nil, true).Code)
	suite.Equal(http.StatusNotFound, suite.do(http.MethodDelete, "/api/auth/logout", nil, true).Code)
	suite.Equal(http.StatusUnauthorized, suite.do(http.MethodDelete, "/api/auth/logout", nil, false).Code)
}

func (suite *HandlerTestSuite) TestEmailVerificationRoutes() {
	suite.mockRecover.On("SendEmailVerification", mock.Anything, "u@x.com").Return(nil).Once()
	suite.mockRecover.On("VerifyEmail", mock.Anything, "good").Return(nil).Once()
	suite.mockRecover.On("VerifyEmail", mock.Anything, "stale").Return(apperrors.ErrEmailTokenExpired).Once()
	suite.mockRecover.On("VerifyEmail", mock.Anything, "gone").Return(apperrors.ErrEmailTokenNotFound).Once()

	suite.Equal(http.StatusNoContent, suite.do(http.MethodPost, "/api/auth/email-verification", dto.EmailRequest{Email: "u@x.com"}, false).Code)
	suite.Equal(http.StatusOK, suite.do(http.MethodGet, "/api/auth/email-verification?token=good", nil, false).Code)
	suite.Equal(http.StatusGone, suite.do(http.MethodGet, "/api/auth/email-verification?token=stale", nil, false).Code)
	suite.Equal(http.StatusNotFound, suite.do(http.MethodGet, "/api/auth/email-verification?token=gone", nil, false).Code)
	suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/api/auth/email-verification", nil, false).Code)
}

func (suite *HandlerTestSuite) TestPasswordResetRoutes() {
	recoverReq := dto.RecoverAccountRequest{Token: "t", Password: "new-password", ConfirmPassword: "new-password"}
	suite.mockRecover.On("RequestPasswordReset", mock.Anything, "u@x.com").Return(nil).Once()
	suite.mockRecover.On("VerifyResetToken", mock.Anything, "t").Return(nil).Once()
	suite.mockRecover.On("VerifyResetToken", mock.Anything, "bad").Return(apperrors.ErrInvalidPasswordToken).Once()
	suite.mockRecover.On("RecoverAccount", mock.Anything, recoverReq).Return(nil).Once()
	suite.mockRecover.On("RecoverAccount", mock.Anything, recoverReq).Return(apperrors.ErrPasswordTokenExpired).Once()

	suite.Equal(http.StatusNoContent, suite.do(http.MethodPost, "/api/auth/reset-password", dto.EmailRequest{Email: "u@x.com"}, false).Code)
	suite.Equal(http.StatusNoContent, suite.do(http.MethodGet, "/api/auth/reset-password/verify?token=t", nil, false).Code)
	suite.Equal(http.StatusNotFound, suite.do(http.MethodGet, "/api/auth/reset-password/verify?token=bad", nil, false).Code)
	suite.Equal(http.StatusNoContent, suite.do(http.MethodPost, "/api/auth/recover", recoverReq, false).Code)
	suite.Equal(http.StatusGone, suite.do(http.MethodPost, "/api/auth/recover", recoverReq, false).Code)

	short := dto.RecoverAccountRequest{Token: "t", Password: "short", ConfirmPassword: "short"}
	suite.Equal(http.StatusBadRequest, suite.do(http.MethodPost, "/api/auth/recover", short, false).Code)
}
