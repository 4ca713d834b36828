package services

import (
	"context"
	"testing"
	"time"

	"github.com/linguoapp/linguo/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetaList_EmptyForNewUser(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeMetaRepo{listOut: map[string]*models.ReviewMeta{}}
	svc := NewMetaService(db, &fakeRepoMgr{meta: repo})

	got, err := svc.List(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMetaUpsert_RequiresDeckID(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeMetaRepo{}
	svc := NewMetaService(db, &fakeRepoMgr{meta: repo})

	err := svc.Upsert(context.Background(), "user-1", &models.ReviewMeta{})
	require.Error(t, err)
	assert.Empty(t, repo.upserts)
}

func TestMetaUpsert_StoresRecordAsIs(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeMetaRepo{}
	svc := NewMetaService(db, &fakeRepoMgr{meta: repo})

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	meta := &models.ReviewMeta{DeckID: "d1", ViewCount: 7, ViewCountUpdated: &now}

	require.NoError(t, svc.Upsert(context.Background(), "user-1", meta))
	require.Len(t, repo.upserts, 1)
	assert.Equal(t, int64(7), repo.upserts[0].ViewCount)
}
