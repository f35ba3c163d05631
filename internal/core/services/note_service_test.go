package services_test

import (
	"context"
	"testing"

	"github.com/rurasogoodo/notes_app/internal/apperrors"
	"github.com/rurasogoodo/notes_app/internal/core/domain"
	portssvc "github.com/rurasogoodo/notes_app/internal/core/ports/services"
	"github.com/rurasogoodo/notes_app/internal/core/services"
	"github.com/rurasogoodo/notes_app/internal/dto"
	"github.com/rurasogoodo/notes_app/internal/repositories/memory"
	"github.com/stretchr/testify/suite"
)

type NoteServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	service portssvc.NoteSvcFacade
	owner   string
	other   string
}

func (suite *NoteServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	repos := memory.NewRepositoryProvider()
	suite.service = services.NewNoteService(repos.NoteRepo, repos.UserRepo)

	suite.owner = "owner-1"
	suite.other = "owner-2"
	for _, id := range []string{suite.owner, suite.other} {
		suite.Require().NoError(repos.UserRepo.SaveUser(suite.ctx, domain.User{
			UserID: id, Email: id + "@x.com", Username: id, IsEmailVerified: true,
		}))
	}
}

func (suite *NoteServiceTestSuite) create(userID, title string) *domain.Note {
	note, err := suite.service.CreateNote(suite.ctx, userID, dto.CreateNoteRequest{
		Title:       title,
		Description: "a description long enough",
	})
	suite.Require().NoError(err)
	return note
}

func (suite *NoteServiceTestSuite) TestCreateAndGet() {
	note := suite.create(suite.owner, "groceries")
	suite.NotEmpty(note.NoteID)
	suite.Equal(suite.owner, note.UserID)

	got, err := suite.service.GetNote(suite.ctx, suite.owner, note.NoteID)
	suite.Require().NoError(err)
	suite.Equal("groceries", got.Title)
}

func (suite *NoteServiceTestSuite) TestCreate_UnknownUser() {
	_, err := suite.service.CreateNote(suite.ctx, "ghost", dto.CreateNoteRequest{Title: "abc", Description: "0123456789"})
	suite.ErrorIs(err, apperrors.ErrUserNotFound)
}

func (suite *NoteServiceTestSuite) TestNotesAreScopedToOwner() {
	note := suite.create(suite.owner, "private")

	_, err := suite.service.GetNote(suite.ctx, suite.other, note.NoteID)
	suite.ErrorIs(err, apperrors.ErrNoteNotFound)

	_, err = suite.service.UpdateNote(suite.ctx, suite.other, note.NoteID, dto.UpdateNoteRequest{Title: "stolen", Description: "0123456789"})
	suite.ErrorIs(err, apperrors.ErrNoteNotFound)

	suite.ErrorIs(suite.service.DeleteNote(suite.ctx, suite.other, note.NoteID), apperrors.ErrNoteNotFound)

	page, err := suite.service.ListNotes(suite.ctx, suite.other, dto.ListNotesParams{})
	suite.Require().NoError(err)
	suite.Empty(page.Notes)
}

func (suite *NoteServiceTestSuite) TestUpdate() {
	note := suite.create(suite.owner, "draft")

	updated, err := suite.service.UpdateNote(suite.ctx, suite.owner, note.NoteID, dto.UpdateNoteRequest{
		Title:       "final",
		Description: "rewritten description",
		IsHidden:    true,
	})
	suite.Require().NoError(err)
	suite.Equal("final", updated.Title)
	suite.True(updated.IsHidden)
	suite.Equal(note.CreatedAt, updated.CreatedAt)

	got, err := suite.service.GetNote(suite.ctx, suite.owner, note.NoteID)
	suite.Require().NoError(err)
	suite.Equal("rewritten description", got.Description)
}

func (suite *NoteServiceTestSuite) TestDelete() {
	note := suite.create(suite.owner, "temp")

	suite.Require().NoError(suite.service.DeleteNote(suite.ctx, suite.owner, note.NoteID))
	_, err := suite.service.GetNote(suite.ctx, suite.owner, note.NoteID)
	suite.ErrorIs(err, apperrors.ErrNoteNotFound)
	suite.ErrorIs(suite.service.DeleteNote(suite.ctx, suite.owner, note.NoteID), apperrors.ErrNoteNotFound)
}

func (suite *NoteServiceTestSuite) TestListNotes_PagesWithoutGapsOrRepeats() {
	for i := 0; i < 5; i++ {
		suite.create(suite.owner, "note title")
	}
	suite.create(suite.other, "not mine")

	seen := map[string]bool{}
	params := dto.ListNotesParams{Limit: 2}
	pages := 0
	for {
		page, err := suite.service.ListNotes(suite.ctx, suite.owner, params)
		suite.Require().NoError(err)
		pages++
		for _, n := range page.Notes {
			suite.Equal(suite.owner, n.UserID)
			suite.False(seen[n.NoteID], "note %s returned twice", n.NoteID)
			seen[n.NoteID] = true
		}
		if page.NextPageToken == "" {
			break
		}
		suite.Require().Len(page.Notes, 2)
		params.NextPageToken = page.NextPageToken
	}
	suite.Len(seen, 5)
	suite.Equal(3, pages)
}

func (suite *NoteServiceTestSuite) TestListNotes_ClampsLimitAndRejectsBadCursor() {
	suite.create(suite.owner, "only one")

	page, err := suite.service.ListNotes(suite.ctx, suite.owner, dto.ListNotesParams{Limit: 1000})
	suite.Require().NoError(err)
	suite.Len(page.Notes, 1)
	suite.Empty(page.NextPageToken)

	_, err = suite.service.ListNotes(suite.ctx, suite.owner, dto.ListNotesParams{NextPageToken: "%%%"})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestNoteServiceTestSuite(t *testing.T) {
	suite.Run(t, new(NoteServiceTestSuite))
}
