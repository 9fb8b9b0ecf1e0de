package source_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/budget/internal/apperror"
	"github.com/MrJamesThe3rd/budget/internal/source"
)

func ptr[T any](v T) *T { return &v }

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    source.CreateParams
		setupMock func(m *source.MockRepository)
		check     func(t *testing.T, err error)
	}

	tests := []testCase{
		{
			name:   "Success",
			params: source.CreateParams{Name: "Nakit", Type: "cash"},
			setupMock: func(m *source.MockRepository) {
				m.EXPECT().FindSourceByName(gomock.Any(), "Nakit").Return(nil, nil)
				m.EXPECT().
					CreateSource(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, s *source.Source) error {
						s.ID = 1
						return nil
					})
			},
			check: func(t *testing.T, err error) { assert.NoError(t, err) },
		},
		{
			name:   "DuplicateNameDifferentType",
			params: source.CreateParams{Name: "Nakit", Type: "wallet"},
			setupMock: func(m *source.MockRepository) {
				m.EXPECT().
					FindSourceByName(gomock.Any(), "Nakit").
					Return(&source.Source{ID: 3, Name: "Nakit", Type: "cash"}, nil)
			},
			check: func(t *testing.T, err error) { assert.ErrorIs(t, err, source.ErrDuplicateName) },
		},
		{
			name:   "DuplicateRaceAtInsert",
			params: source.CreateParams{Name: "Nakit", Type: "cash"},
			setupMock: func(m *source.MockRepository) {
				m.EXPECT().FindSourceByName(gomock.Any(), "Nakit").Return(nil, nil)
				m.EXPECT().CreateSource(gomock.Any(), gomock.Any()).Return(source.ErrDuplicateName)
			},
			check: func(t *testing.T, err error) { assert.True(t, apperror.IsConflict(err)) },
		},
		{
			name:   "MissingName",
			params: source.CreateParams{Type: "cash"},
			check: func(t *testing.T, err error) {
				var vErr *apperror.ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, "name", vErr.Field)
			},
		},
		{
			name:   "MissingType",
			params: source.CreateParams{Name: "Nakit", Type: "  "},
			check: func(t *testing.T, err error) {
				var vErr *apperror.ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, "type", vErr.Field)
			},
		},
		{
			name:   "RepoError",
			params: source.CreateParams{Name: "Nakit", Type: "cash"},
			setupMock: func(m *source.MockRepository) {
				m.EXPECT().FindSourceByName(gomock.Any(), "Nakit").Return(nil, errors.New("db error"))
			},
			check: func(t *testing.T, err error) { assert.EqualError(t, err, "db error") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := source.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := source.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			tt.check(t, err)

			if err == nil {
				assert.Equal(t, int64(1), got.ID)
			}
		})
	}
}

func TestService_Update(t *testing.T) {
	current := func() *source.Source { return &source.Source{ID: 2, Name: "Yedek hesap", Type: "cash"} }

	type testCase struct {
		name      string
		params    source.UpdateParams
		setupMock func(m *source.MockRepository)
		want      *source.Source
		check     func(t *testing.T, err error)
	}

	tests := []testCase{
		{
			name:   "RenameToNameOfOtherSource",
			params: source.UpdateParams{Name: ptr("Ana hesap")},
			setupMock: func(m *source.MockRepository) {
				m.EXPECT().GetSource(gomock.Any(), int64(2)).Return(current(), nil)
				m.EXPECT().
					FindSourceByName(gomock.Any(), "Ana hesap").
					Return(&source.Source{ID: 1, Name: "Ana hesap", Type: "bank"}, nil)
			},
			check: func(t *testing.T, err error) { assert.ErrorIs(t, err, source.ErrDuplicateName) },
		},
		{
			name:   "RenameToOwnName",
			params: source.UpdateParams{Name: ptr("Yedek hesap"), Type: ptr("bank")},
			setupMock: func(m *source.MockRepository) {
				m.EXPECT().GetSource(gomock.Any(), int64(2)).Return(current(), nil)
				m.EXPECT().UpdateSource(gomock.Any(), gomock.Any()).Return(nil)
			},
			want:  &source.Source{ID: 2, Name: "Yedek hesap", Type: "bank"},
			check: func(t *testing.T, err error) { assert.NoError(t, err) },
		},
		{
			name:   "Rename",
			params: source.UpdateParams{Name: ptr("Cüzdan")},
			setupMock: func(m *source.MockRepository) {
				m.EXPECT().GetSource(gomock.Any(), int64(2)).Return(current(), nil)
				m.EXPECT().FindSourceByName(gomock.Any(), "Cüzdan").Return(nil, nil)
				m.EXPECT().UpdateSource(gomock.Any(), &source.Source{ID: 2, Name: "Cüzdan", Type: "cash"}).Return(nil)
			},
			want:  &source.Source{ID: 2, Name: "Cüzdan", Type: "cash"},
			check: func(t *testing.T, err error) { assert.NoError(t, err) },
		},
		{
			name:   "EmptyNameRejectedBeforeWrite",
			params: source.UpdateParams{Name: ptr(""), Type: ptr("bank")},
			setupMock: func(m *source.MockRepository) {
				m.EXPECT().GetSource(gomock.Any(), int64(2)).Return(current(), nil)
			},
			check: func(t *testing.T, err error) { assert.True(t, apperror.IsValidation(err)) },
		},
		{
			name:   "NotFound",
			params: source.UpdateParams{Type: ptr("bank")},
			setupMock: func(m *source.MockRepository) {
				m.EXPECT().GetSource(gomock.Any(), int64(2)).Return(nil, apperror.NotFound("source", 2))
			},
			check: func(t *testing.T, err error) { assert.True(t, apperror.IsNotFound(err)) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := source.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := source.NewService(repo)
			got, err := svc.Update(context.Background(), 2, tt.params)

			tt.check(t, err)

			if tt.want != nil {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestService_Delete(t *testing.T) {
	t.Run("InUse", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := source.NewMockRepository(ctrl)

		repo.EXPECT().GetSource(gomock.Any(), int64(4)).Return(&source.Source{ID: 4}, nil)
		repo.EXPECT().CountExpenses(gomock.Any(), int64(4)).Return(2, nil)

		err := source.NewService(repo).Delete(context.Background(), 4)
		require.Error(t, err)
		assert.True(t, apperror.IsConflict(err))
		assert.Contains(t, err.Error(), "2 expense(s)")
	})

	t.Run("Unused", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := source.NewMockRepository(ctrl)

		repo.EXPECT().GetSource(gomock.Any(), int64(4)).Return(&source.Source{ID: 4}, nil)
		repo.EXPECT().CountExpenses(gomock.Any(), int64(4)).Return(0, nil)
		repo.EXPECT().DeleteSource(gomock.Any(), int64(4)).Return(nil)

		assert.NoError(t, source.NewService(repo).Delete(context.Background(), 4))
	})

	t.Run("NotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := source.NewMockRepository(ctrl)

		repo.EXPECT().GetSource(gomock.Any(), int64(9)).Return(nil, apperror.NotFound("source", 9))

		err := source.NewService(repo).Delete(context.Background(), 9)
		assert.True(t, apperror.IsNotFound(err))
	})
}

func TestService_GetByName(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := source.NewMockRepository(ctrl)

	repo.EXPECT().FindSourceByName(gomock.Any(), "Nakit").Return(&source.Source{ID: 1, Name: "Nakit"}, nil)
	repo.EXPECT().FindSourceByName(gomock.Any(), "Yok").Return(nil, nil)

	svc := source.NewService(repo)

	got, err := svc.GetByName(context.Background(), "Nakit")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)

	_, err = svc.GetByName(context.Background(), "Yok")
	assert.True(t, apperror.IsValidation(err))
}
