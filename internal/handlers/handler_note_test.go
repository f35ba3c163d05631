package handlers_test

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rurasogoodo/notes_app/internal/apperrors"
	"github.com/rurasogoodo/notes_app/internal/core/domain"
	"github.com/rurasogoodo/notes_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) note() *domain.Note {
	return &domain.Note{
		NoteID:      uuid.NewString(),
		UserID:      suite.user.UserID,
		Title:       "groceries",
		Description: "milk, eggs and bread",
		CreatedAt:   time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (suite *HandlerTestSuite) TestNotes_RequireAuth() {
	suite.Equal(http.StatusUnauthorized, suite.do(http.MethodGet, "/api/notes/allNotes", nil, false).Code)
	suite.Equal(http.StatusUnauthorized, suite.do(http.MethodPost, "/api/notes/create", nil, false).Code)
}

func (suite *HandlerTestSuite) TestCreateNote_EmbedsOwnerFromToken() {
	req := dto.CreateNoteRequest{Title: "groceries", Description: "milk, eggs and bread"}
	note := suite.note()
	suite.mockNotes.On("CreateNote", mock.Anything, suite.user.UserID, req).Return(note, nil).Once()

	w := suite.do(http.MethodPost, "/api/notes/create", req, true)

	suite.Equal(http.StatusOK, w.Code)
	body := decode[dto.DataResponse[dto.NoteResponse]](suite, w)
	suite.Equal(note.NoteID, body.Data.NoteID)
	suite.Equal(dto.UserResponse{UserID: suite.user.UserID, Username: "u", Email: "u@x.com"}, body.Data.User)
}

func (suite *HandlerTestSuite) TestCreateNote_RejectsShortFields() {
	w := suite.do(http.MethodPost, "/api/notes/create", dto.CreateNoteRequest{Title: "ab", Description: "short"}, true)

	suite.Equal(http.StatusBadRequest, w.Code)
	body := decode[dto.ErrorResponse](suite, w)
	suite.Contains(body.Fields, "title")
	suite.Contains(body.Fields, "description")
}

func (suite *HandlerTestSuite) TestListNotes() {
	page := &domain.NotePage{Notes: []domain.Note{*suite.note(), *suite.note()}, NextPageToken: "next"}
	suite.mockNotes.On("ListNotes", mock.Anything, suite.user.UserID, mock.MatchedBy(func(p dto.ListNotesParams) bool {
		return p.Limit == 2 && p.NextPageToken == "abc"
	})).Return(page, nil).Once()

	w := suite.do(http.MethodGet, "/api/notes/allNotes?limit=2&nextToken=abc", nil, true)

	suite.Equal(http.StatusOK, w.Code)
	body := decode[dto.DataResponse[dto.ListNotesResponse]](suite, w)
	suite.Len(body.Data.Notes, 2)
	suite.Equal("next", body.Data.NextPageToken)

	suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/api/notes/allNotes?limit=500", nil, true).Code)
}

func (suite *HandlerTestSuite) TestListNotes_DefaultLimit() {
	suite.mockNotes.On("ListNotes", mock.Anything, suite.user.UserID, dto.ListNotesParams{Limit: 20}).
		Return(&domain.NotePage{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/notes/allNotes", nil, true)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestGetUpdateDeleteNote() {
	note := suite.note()
	update := dto.UpdateNoteRequest{Title: "final", Description: "rewritten description", IsHidden: true}
	updated := *note
	updated.Title = "final"

	suite.mockNotes.On("GetNote", mock.Anything, suite.user.UserID, note.NoteID).Return(note, nil).Once()
	suite.mockNotes.On("UpdateNote", mock.Anything, suite.user.UserID, note.NoteID, update).Return(&updated, nil).Once()
	suite.mockNotes.On("DeleteNote", mock.Anything, suite.user.UserID, note.NoteID).Return(nil).Once()
	suite.mockNotes.On("DeleteNote", mock.Anything, suite.user.UserID, note.NoteID).Return(apperrors.ErrNoteNotFound).Once()

	w := suite.do(http.MethodGet, "/api/notes/"+note.NoteID, nil, true)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("groceries", decode[dto.DataResponse[dto.NoteResponse]](suite, w).Data.Title)

	w = suite.do(http.MethodPut, "/api/notes/"+note.NoteID, update, true)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("final", decode[dto.DataResponse[dto.NoteResponse]](suite, w).Data.Title)

	suite.Equal(http.StatusNoContent, suite.do(http.MethodDelete, "/api/notes/"+note.NoteID, nil, true).Code)
	w = suite.do(http.MethodDelete, "/api/notes/"+note.NoteID, nil, true)
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal(string(apperrors.KindNoteNotFound), decode[dto.ErrorResponse](suite, w).Reason)
}

func (suite *HandlerTestSuite) TestNoteRoutes_MalformedIDIsNotFound() {
	w := suite.do(http.MethodGet, "/api/notes/not-a-uuid", nil, true)
	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockNotes.AssertNotCalled(suite.T(), "GetNote", mock.Anything, mock.Anything, mock.Anything)
}
