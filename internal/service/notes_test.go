package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"ai-notepad/internal/service"
	"ai-notepad/internal/service/mocks"
	"ai-notepad/internal/storage"

	"go.uber.org/mock/gomock"
)

func init() {
	// Keep service logging out of test output.
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testContext() context.Context {
	return context.Background()
}

type noteMocks struct {
	notebooks *mocks.MockNotebookStore
	notes     *mocks.MockNoteStore
	tags      *mocks.MockTagStore
	recent    *mocks.MockRecentStore
}

func newNoteService(t *testing.T) (service.NoteService, noteMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := noteMocks{
		notebooks: mocks.NewMockNotebookStore(ctrl),
		notes:     mocks.NewMockNoteStore(ctrl),
		tags:      mocks.NewMockTagStore(ctrl),
		recent:    mocks.NewMockRecentStore(ctrl),
	}
	return service.NewNoteService(m.notebooks, m.notes, m.tags, m.recent), m
}

func isValidation(field string) func(error) bool {
	return func(err error) bool {
		var verr *service.ValidationError
		return errors.As(err, &verr) && verr.Field == field
	}
}

func TestNoteService_CreateNote(t *testing.T) {
	nbID := int64(3)

	tests := []struct {
		name      string
		in        service.NoteInput
		mockSetup func(m noteMocks)
		wantTitle string
		checkErr  func(error) bool
	}{
		{
			name: "blank title becomes default",
			in:   service.NoteInput{Title: "   ", Body: "hello"},
			mockSetup: func(m noteMocks) {
				m.notes.EXPECT().Create(gomock.Any(), nil, service.DefaultNoteTitle, "hello").
					Return(&storage.Note{ID: 1, Title: service.DefaultNoteTitle, Body: "hello"}, nil)
			},
			wantTitle: service.DefaultNoteTitle,
		},
		{
			name: "title is trimmed and notebook checked",
			in:   service.NoteInput{NotebookID: &nbID, Title: "  Plan  ", Body: "b"},
			mockSetup: func(m noteMocks) {
				m.notebooks.EXPECT().Get(gomock.Any(), nbID).Return(&storage.Notebook{ID: nbID}, nil)
				m.notes.EXPECT().Create(gomock.Any(), &nbID, "Plan", "b").
					Return(&storage.Note{ID: 2, Title: "Plan"}, nil)
			},
			wantTitle: "Plan",
		},
		{
			name: "missing notebook",
			in:   service.NoteInput{NotebookID: &nbID, Title: "x"},
			mockSetup: func(m noteMocks) {
				m.notebooks.EXPECT().Get(gomock.Any(), nbID).Return(nil, storage.ErrNotFound)
			},
			checkErr: func(err error) bool { return errors.Is(err, service.ErrNotFound) },
		},
		{
			name: "store failure",
			in:   service.NoteInput{Title: "x"},
			mockSetup: func(m noteMocks) {
				m.notes.EXPECT().Create(gomock.Any(), nil, "x", "").Return(nil, errors.New("disk full"))
			},
			checkErr: func(err error) bool { return err != nil && !errors.Is(err, service.ErrNotFound) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newNoteService(t)
			tt.mockSetup(m)

			note, err := svc.CreateNote(testContext(), tt.in)
			if tt.checkErr != nil {
				if !tt.checkErr(err) {
					t.Errorf("CreateNote() error = %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateNote() error = %v", err)
			}
			if note.Title != tt.wantTitle {
				t.Errorf("CreateNote() title = %q, want %q", note.Title, tt.wantTitle)
			}
		})
	}
}

func TestNoteService_UpdateNote(t *testing.T) {
	t.Run("updates moves and reloads", func(t *testing.T) {
		svc, m := newNoteService(t)
		gomock.InOrder(
			m.notes.EXPECT().Update(gomock.Any(), int64(5), "New", "body").Return(nil),
			m.notes.EXPECT().Move(gomock.Any(), int64(5), nil).Return(nil),
			m.notes.EXPECT().Get(gomock.Any(), int64(5)).Return(&storage.Note{ID: 5, Title: "New"}, nil),
		)

		note, err := svc.UpdateNote(testContext(), 5, service.NoteInput{Title: " New ", Body: "body"})
		if err != nil {
			t.Fatalf("UpdateNote() error = %v", err)
		}
		if note.Title != "New" {
			t.Errorf("UpdateNote() title = %q", note.Title)
		}
	})

	t.Run("empty title", func(t *testing.T) {
		svc, _ := newNoteService(t)
		_, err := svc.UpdateNote(testContext(), 5, service.NoteInput{Title: ""})
		if !isValidation("title")(err) {
			t.Errorf("UpdateNote() error = %v, want title validation error", err)
		}
	})

	t.Run("missing note", func(t *testing.T) {
		svc, m := newNoteService(t)
		m.notes.EXPECT().Update(gomock.Any(), int64(9), "x", "").Return(storage.ErrNotFound)

		_, err := svc.UpdateNote(testContext(), 9, service.NoteInput{Title: "x"})
		if !errors.Is(err, service.ErrNotFound) {
			t.Errorf("UpdateNote() error = %v, want ErrNotFound", err)
		}
	})
}

func TestNoteService_OpenNote(t *testing.T) {
	svc, m := newNoteService(t)
	gomock.InOrder(
		m.notes.EXPECT().Get(gomock.Any(), int64(4)).Return(&storage.Note{ID: 4}, nil),
		m.recent.EXPECT().Touch(gomock.Any(), int64(4)).Return(nil),
	)

	if _, err := svc.OpenNote(testContext(), 4); err != nil {
		t.Fatalf("OpenNote() error = %v", err)
	}
}

func TestNoteService_OpenNoteMissingSkipsRecent(t *testing.T) {
	svc, m := newNoteService(t)
	m.notes.EXPECT().Get(gomock.Any(), int64(4)).Return(nil, storage.ErrNotFound)

	if _, err := svc.OpenNote(testContext(), 4); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("OpenNote() error = %v, want ErrNotFound", err)
	}
}

func TestNoteService_Notebooks(t *testing.T) {
	t.Run("create rejects blank name", func(t *testing.T) {
		svc, _ := newNoteService(t)
		if _, err := svc.CreateNotebook(testContext(), "  "); !isValidation("name")(err) {
			t.Errorf("CreateNotebook() error = %v", err)
		}
	})

	t.Run("duplicate name is a conflict", func(t *testing.T) {
		svc, m := newNoteService(t)
		m.notebooks.EXPECT().Create(gomock.Any(), "Work").Return(nil, storage.ErrDuplicateName)
		if _, err := svc.CreateNotebook(testContext(), "Work"); !errors.Is(err, service.ErrConflict) {
			t.Errorf("CreateNotebook() error = %v, want ErrConflict", err)
		}
	})

	t.Run("rename returns the reloaded notebook", func(t *testing.T) {
		svc, m := newNoteService(t)
		m.notebooks.EXPECT().Rename(gomock.Any(), int64(2), "Home").Return(nil)
		m.notebooks.EXPECT().Get(gomock.Any(), int64(2)).Return(&storage.Notebook{ID: 2, Name: "Home"}, nil)

		nb, err := svc.RenameNotebook(testContext(), 2, " Home ")
		if err != nil {
			t.Fatalf("RenameNotebook() error = %v", err)
		}
		if nb.Name != "Home" {
			t.Errorf("RenameNotebook() = %+v", nb)
		}
	})

	t.Run("delete missing", func(t *testing.T) {
		svc, m := newNoteService(t)
		m.notebooks.EXPECT().Delete(gomock.Any(), int64(8)).Return(storage.ErrNotFound)
		if err := svc.DeleteNotebook(testContext(), 8); !errors.Is(err, service.ErrNotFound) {
			t.Errorf("DeleteNotebook() error = %v", err)
		}
	})
}

func TestNoteService_Tags(t *testing.T) {
	t.Run("add checks the note first", func(t *testing.T) {
		svc, m := newNoteService(t)
		m.notes.EXPECT().Get(gomock.Any(), int64(1)).Return(nil, storage.ErrNotFound)

		if _, err := svc.AddTag(testContext(), 1, "go"); !errors.Is(err, service.ErrNotFound) {
			t.Errorf("AddTag() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("add blank tag", func(t *testing.T) {
		svc, _ := newNoteService(t)
		if _, err := svc.AddTag(testContext(), 1, " \t "); !isValidation("tag")(err) {
			t.Errorf("AddTag() error = %v", err)
		}
	})

	t.Run("add", func(t *testing.T) {
		svc, m := newNoteService(t)
		m.notes.EXPECT().Get(gomock.Any(), int64(1)).Return(&storage.Note{ID: 1}, nil)
		m.tags.EXPECT().AddToNote(gomock.Any(), int64(1), "Go").Return(&storage.Tag{ID: 7, Name: "go"}, nil)

		tag, err := svc.AddTag(testContext(), 1, "Go")
		if err != nil {
			t.Fatalf("AddTag() error = %v", err)
		}
		if tag.Name != "go" {
			t.Errorf("AddTag() = %+v", tag)
		}
	})

	t.Run("remove missing link", func(t *testing.T) {
		svc, m := newNoteService(t)
		m.tags.EXPECT().RemoveFromNote(gomock.Any(), int64(1), "go").Return(storage.ErrNotFound)
		if err := svc.RemoveTag(testContext(), 1, "go"); !errors.Is(err, service.ErrNotFound) {
			t.Errorf("RemoveTag() error = %v", err)
		}
	})

	t.Run("notes by blank tag", func(t *testing.T) {
		svc, _ := newNoteService(t)
		if _, err := svc.NotesByTag(testContext(), ""); !isValidation("tag")(err) {
			t.Errorf("NotesByTag() error = %v", err)
		}
	})
}

func TestNoteService_Search(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		mockSetup func(m noteMocks)
		wantLen   int
		checkErr  func(error) bool
	}{
		{
			name:     "empty query",
			query:    "   ",
			checkErr: isValidation("q"),
		},
		{
			name:  "trimmed query",
			query: "  unicorn ",
			mockSetup: func(m noteMocks) {
				m.notes.EXPECT().Search(gomock.Any(), "unicorn").
					Return([]storage.SearchResult{{ID: 1, Title: "Zoo"}}, nil)
			},
			wantLen: 1,
		},
		{
			name:  "store failure",
			query: "x",
			mockSetup: func(m noteMocks) {
				m.notes.EXPECT().Search(gomock.Any(), "x").Return(nil, errors.New("boom"))
			},
			checkErr: func(err error) bool { return err != nil },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newNoteService(t)
			if tt.mockSetup != nil {
				tt.mockSetup(m)
			}

			results, err := svc.Search(testContext(), tt.query)
			if tt.checkErr != nil {
				if !tt.checkErr(err) {
					t.Errorf("Search() error = %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if len(results) != tt.wantLen {
				t.Errorf("Search() len = %d, want %d", len(results), tt.wantLen)
			}
		})
	}
}

func TestNoteService_Recent(t *testing.T) {
	svc, m := newNoteService(t)

	if _, err := svc.Recent(testContext(), -1); !isValidation("limit")(err) {
		t.Errorf("Recent(-1) error = %v", err)
	}

	m.recent.EXPECT().List(gomock.Any(), 10).Return([]storage.RecentEntry{{NoteID: 1}}, nil)
	entries, err := svc.Recent(testContext(), 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Recent() len = %d, want 1", len(entries))
	}
}
