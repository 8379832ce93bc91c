package state

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/najdeno/internal/model"
)

func TestFetchItemsPassesFilter(t *testing.T) {
	m := newMockAPI(t)
	filter := model.ItemFilter{Status: model.ItemStatusLost, Location: "Library"}
	m.EXPECT().ListItems(gomock.Any(), filter).Return([]model.Item{{ID: 1}, {ID: 2}}, nil)

	s := NewItemSlice(m, Options{})
	_, err := s.FetchItems(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, s.State().Items, 2)
}

func TestFetchItemSelectsAndClearsOnFailure(t *testing.T) {
	m := newMockAPI(t)
	gomock.InOrder(
		m.EXPECT().GetItem(gomock.Any(), int64(4)).Return(&model.Item{ID: 4, Name: "Keys"}, nil),
		m.EXPECT().GetItem(gomock.Any(), int64(5)).Return(nil, serverError(500, "Database unavailable")),
	)

	s := NewItemSlice(m, Options{})
	ctx := context.Background()

	_, err := s.FetchItem(ctx, 4)
	require.NoError(t, err)
	require.NotNil(t, s.State().SelectedItem)
	assert.Equal(t, "Keys", s.State().SelectedItem.Name)

	_, err = s.FetchItem(ctx, 5)
	require.Error(t, err)
	st := s.State()
	assert.Nil(t, st.SelectedItem)
	assert.Equal(t, "Database unavailable", st.Error)
	assert.False(t, st.Loading)
}

func TestFetchItemNotFoundIsAbsentData(t *testing.T) {
	m := newMockAPI(t)
	gomock.InOrder(
		m.EXPECT().GetItem(gomock.Any(), int64(4)).Return(&model.Item{ID: 4, Name: "Keys"}, nil),
		m.EXPECT().GetItem(gomock.Any(), int64(42)).Return(nil, serverError(404, "Item not found")),
	)

	s := NewItemSlice(m, Options{})
	ctx := context.Background()

	_, err := s.FetchItem(ctx, 4)
	require.NoError(t, err)

	item, err := s.FetchItem(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, item)

	st := s.State()
	assert.Nil(t, st.SelectedItem)
	assert.Empty(t, st.Error)
	assert.False(t, st.Loading)
}

func TestReportUpdateDeleteItem(t *testing.T) {
	m := newMockAPI(t)
	name := "Blue umbrella"
	m.EXPECT().ListItems(gomock.Any(), gomock.Any()).Return([]model.Item{{ID: 1, Name: "Umbrella"}}, nil)
	m.EXPECT().GetItem(gomock.Any(), int64(1)).Return(&model.Item{ID: 1, Name: "Umbrella"}, nil)
	m.EXPECT().CreateItem(gomock.Any(), gomock.Any()).Return(&model.Item{ID: 2, Name: "Wallet"}, nil)
	m.EXPECT().UpdateItem(gomock.Any(), int64(1), model.ItemUpdate{Name: &name}).
		Return(&model.Item{ID: 1, Name: name}, nil)
	m.EXPECT().DeleteItem(gomock.Any(), int64(1)).Return(nil)

	s := NewItemSlice(m, Options{})
	ctx := context.Background()

	_, err := s.FetchItems(ctx, model.ItemFilter{})
	require.NoError(t, err)
	_, err = s.FetchItem(ctx, 1)
	require.NoError(t, err)

	_, err = s.ReportItem(ctx, model.NewItem{Name: "Wallet", Location: "Gym"})
	require.NoError(t, err)
	require.Len(t, s.State().Items, 2)
	assert.Equal(t, int64(2), s.State().Items[1].ID)

	_, err = s.UpdateItem(ctx, 1, model.ItemUpdate{Name: &name})
	require.NoError(t, err)
	st := s.State()
	assert.Equal(t, name, st.Items[0].Name)
	assert.Equal(t, name, st.SelectedItem.Name)

	require.NoError(t, s.DeleteItem(ctx, 1))
	st = s.State()
	require.Len(t, st.Items, 1)
	assert.Equal(t, int64(2), st.Items[0].ID)
	assert.Nil(t, st.SelectedItem)
}

func TestClaimItem(t *testing.T) {
	m := newMockAPI(t)
	m.EXPECT().ClaimItem(gomock.Any(), int64(3)).
		Return(&model.Claim{ID: 10, ItemID: 3, Status: model.ClaimStatusPending}, nil)

	s := NewItemSlice(m, Options{})
	_, err := s.ClaimItem(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, s.State().Claims, 1)
	assert.Equal(t, model.ClaimStatusPending, s.State().Claims[0].Status)
}

func TestUploadImageAppendsEverywhere(t *testing.T) {
	m := newMockAPI(t)
	m.EXPECT().ListItems(gomock.Any(), gomock.Any()).Return([]model.Item{{ID: 1}, {ID: 2}}, nil)
	m.EXPECT().GetItem(gomock.Any(), int64(1)).Return(&model.Item{ID: 1}, nil)
	m.EXPECT().AddItemImage(gomock.Any(), int64(1), "uploads/a.jpg").
		Return(&model.Image{ID: 7, ItemID: 1, ImageURL: "uploads/a.jpg"}, nil)

	s := NewItemSlice(m, Options{})
	ctx := context.Background()
	_, _ = s.FetchItems(ctx, model.ItemFilter{})
	_, _ = s.FetchItem(ctx, 1)

	_, err := s.UploadImage(ctx, 1, "uploads/a.jpg")
	require.NoError(t, err)

	st := s.State()
	require.Len(t, st.SelectedItem.Images, 1)
	require.Len(t, st.Items[0].Images, 1)
	assert.Empty(t, st.Items[1].Images)
	assert.False(t, st.UploadingImage)
}

func TestUploadErrorIsIsolated(t *testing.T) {
	m := newMockAPI(t)
	m.EXPECT().GetItem(gomock.Any(), gomock.Any()).Return(nil, serverError(403, "Item is hidden"))
	m.EXPECT().AddItemImage(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, serverError(413, ""))

	s := NewItemSlice(m, Options{})
	ctx := context.Background()

	_, _ = s.FetchItem(ctx, 1)
	_, err := s.UploadImage(ctx, 1, "data:image/jpeg;base64,AAAA")
	require.Error(t, err)

	st := s.State()
	assert.Equal(t, "Item is hidden", st.Error, "upload must not clobber the fetch error")
	assert.Equal(t, "Failed to upload image", st.ImageUploadError)

	s.ClearImageUploadError()
	st = s.State()
	assert.Empty(t, st.ImageUploadError)
	assert.Equal(t, "Item is hidden", st.Error)

	s.ClearError()
	assert.Empty(t, s.State().Error)
}

func TestItemStateIsASnapshot(t *testing.T) {
	m := newMockAPI(t)
	m.EXPECT().ListItems(gomock.Any(), gomock.Any()).
		Return([]model.Item{{ID: 1, Images: []model.Image{{ID: 1}}}}, nil)

	s := NewItemSlice(m, Options{})
	_, _ = s.FetchItems(context.Background(), model.ItemFilter{})

	st := s.State()
	st.Items[0].Name = "mutated"
	st.Items[0].Images[0].ImageURL = "mutated"

	fresh := s.State()
	assert.Empty(t, fresh.Items[0].Name)
	assert.Empty(t, fresh.Items[0].Images[0].ImageURL)
}

func TestCommentSlice(t *testing.T) {
	m := newMockAPI(t)
	m.EXPECT().ListComments(gomock.Any()).Return([]model.Comment{
		{ID: 1, ItemID: 1, Content: "a"},
		{ID: 2, ItemID: 2, Content: "b"},
	}, nil)
	m.EXPECT().CreateComment(gomock.Any(), model.NewComment{ItemID: 1, Content: "c"}).
		Return(&model.Comment{ID: 3, ItemID: 1, Content: "c"}, nil)

	s := NewCommentSlice(m, Options{})
	ctx := context.Background()

	_, err := s.FetchComments(ctx)
	require.NoError(t, err)
	_, err = s.CreateComment(ctx, model.NewComment{ItemID: 1, Content: "c"})
	require.NoError(t, err)

	all := s.State().Comments
	assert.Len(t, all, 3)

	onFirst := ForItem(all, 1)
	require.Len(t, onFirst, 2)
	assert.Equal(t, "a", onFirst[0].Content)
	assert.Equal(t, "c", onFirst[1].Content)
	assert.Empty(t, ForItem(all, 42))
}
