package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"sort"
	"strings"
	"testing"
	"time"

	"podcast_backend/internal/models"
	"podcast_backend/internal/repositories"
	"podcast_backend/internal/services/dto"
	"podcast_backend/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// eventLog records the interleaving of storage and repository calls so the
// tests can assert the store-new, commit, delete-old ordering.
type eventLog struct {
	events []string
}

func (l *eventLog) add(event string) {
	l.events = append(l.events, event)
}

func (l *eventLog) firstIndex(prefix string) int {
	for i, e := range l.events {
		if strings.HasPrefix(e, prefix) {
			return i
		}
	}
	return -1
}

func (l *eventLog) count(prefix string) int {
	n := 0
	for _, e := range l.events {
		if strings.HasPrefix(e, prefix) {
			n++
		}
	}
	return n
}

// fakeStorage implements storage.Storage against an in-memory map with a
// /files public URL space, mirroring the local backend's semantics.
type fakeStorage struct {
	log     *eventLog
	objects map[string][]byte

	failSavePrefix   string
	failDeleteByURL  bool
	deleteByURLCalls []string
}

func newFakeStorage(log *eventLog) *fakeStorage {
	return &fakeStorage{
		log:     log,
		objects: make(map[string][]byte),
	}
}

func (s *fakeStorage) Save(ctx context.Context, key string, reader io.Reader, contentType string) error {
	if s.failSavePrefix != "" && strings.HasPrefix(key, s.failSavePrefix) {
		return errors.New("save failed")
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.objects[key] = data
	s.log.add("save:" + key)
	return nil
}

func (s *fakeStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	data, ok := s.objects[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStorage) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := s.objects[key]
	return ok, nil
}

func (s *fakeStorage) Delete(ctx context.Context, key string) error {
	delete(s.objects, key)
	s.log.add("deletekey:" + key)
	return nil
}

func (s *fakeStorage) DeleteByURL(ctx context.Context, url string) error {
	s.deleteByURLCalls = append(s.deleteByURLCalls, url)
	if s.failDeleteByURL {
		return errors.New("delete failed")
	}
	delete(s.objects, strings.TrimPrefix(url, "/files/"))
	s.log.add("delete:" + url)
	return nil
}

func (s *fakeStorage) URL(key string) string {
	return "/files/" + key
}

func (s *fakeStorage) Owns(url string) bool {
	return strings.HasPrefix(url, "/files/")
}

func (s *fakeStorage) SignUploadURL(ctx context.Context, key, contentType string, expiry time.Duration) (string, error) {
	return "", errors.New("unused")
}

// fakePodcastRepo is an in-memory PodcastRepository sharing the event log
// with the fake storage.
type fakePodcastRepo struct {
	log     *eventLog
	records map[string]models.Podcast

	failCreate bool
	failSave   bool
}

func newFakePodcastRepo(log *eventLog) *fakePodcastRepo {
	return &fakePodcastRepo{
		log:     log,
		records: make(map[string]models.Podcast),
	}
}

func (r *fakePodcastRepo) Create(db *gorm.DB, podcast *models.Podcast) error {
	if r.failCreate {
		return errors.New("insert failed")
	}
	if podcast.ID == "" {
		podcast.ID = uuid.NewString()
	}
	r.records[podcast.ID] = *podcast
	r.log.add("repo.create:" + podcast.ID)
	return nil
}

func (r *fakePodcastRepo) FindByID(db *gorm.DB, id string) (*models.Podcast, error) {
	record, ok := r.records[id]
	if !ok {
		return nil, repositories.ErrPodcastNotFound
	}
	copied := record
	return &copied, nil
}

// FindAll honors the repository contract: newest first.
func (r *fakePodcastRepo) FindAll(db *gorm.DB) ([]models.Podcast, error) {
	all := make([]models.Podcast, 0, len(r.records))
	for _, record := range r.records {
		all = append(all, record)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all, nil
}

func (r *fakePodcastRepo) Save(db *gorm.DB, podcast *models.Podcast) error {
	if r.failSave {
		return errors.New("update failed")
	}
	r.records[podcast.ID] = *podcast
	r.log.add("repo.save:" + podcast.ID)
	return nil
}

func (r *fakePodcastRepo) Delete(db *gorm.DB, id string) error {
	if _, ok := r.records[id]; !ok {
		return repositories.ErrPodcastNotFound
	}
	delete(r.records, id)
	r.log.add("repo.delete:" + id)
	return nil
}

func (r *fakePodcastRepo) Count(db *gorm.DB) (int64, error) {
	return int64(len(r.records)), nil
}

func testConfig() *PodcastConfig {
	return &PodcastConfig{
		MaxAudioSize:      1024,
		MaxImageSize:      512,
		AllowedAudioTypes: []string{"audio/mpeg", "audio/wav", "audio/mp4"},
		AllowedImageTypes: []string{"image/jpeg", "image/png", "image/webp"},
		DefaultCoverPath:  "/default-cover.png",
	}
}

func newTestService(t *testing.T) (*podcastService, *fakePodcastRepo, *fakeStorage, *eventLog) {
	t.Helper()
	log := &eventLog{}
	repo := newFakePodcastRepo(log)
	store := newFakeStorage(log)
	svc := NewPodcastService(repo, store, testConfig()).(*podcastService)
	return svc, repo, store, log
}

func makeFileHeader(t *testing.T, filename, contentType string, size int) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("a"), size))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(&buf, writer.Boundary()).ReadForm(int64(size) + 4096)
	require.NoError(t, err)
	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

func seedPodcast(repo *fakePodcastRepo, audioURL, imageURL string) string {
	id := uuid.NewString()
	record := models.Podcast{
		Title:            "Existing Episode",
		ShortDescription: "Already published.",
		AudioURL:         audioURL,
	}
	record.ID = id
	if imageURL != "" {
		record.ImageURL = &imageURL
	}
	repo.records[id] = record
	return id
}

func strPtr(s string) *string { return &s }

func TestCreateStoresObjectsAndBindsURLs(t *testing.T) {
	svc, repo, _, log := newTestService(t)

	req := &dto.CreatePodcastRequest{
		Title:            "First Episode",
		ShortDescription: "A short intro.",
		AudioFile:        makeFileHeader(t, "episode.mp3", "audio/mpeg", 100),
		ImageFile:        makeFileHeader(t, "cover.png", "image/png", 50),
	}

	resp, err := svc.Create(context.Background(), nil, req)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.AudioURL, "/files/audio/"), "audio URL %q", resp.AudioURL)
	require.NotNil(t, resp.ImageURL)
	assert.True(t, strings.HasPrefix(*resp.ImageURL, "/files/images/"), "image URL %q", *resp.ImageURL)

	stored, ok := repo.records[resp.ID]
	require.True(t, ok)
	assert.Equal(t, resp.AudioURL, stored.AudioURL)

	// Objects are stored before the metadata insert.
	audioIdx := log.firstIndex("save:audio/")
	imageIdx := log.firstIndex("save:images/")
	insertIdx := log.firstIndex("repo.create:")
	require.GreaterOrEqual(t, audioIdx, 0)
	require.GreaterOrEqual(t, imageIdx, 0)
	require.GreaterOrEqual(t, insertIdx, 0)
	assert.Less(t, audioIdx, insertIdx)
	assert.Less(t, imageIdx, insertIdx)
}

func TestCreateWithoutImageUsesDefaultCover(t *testing.T) {
	svc, _, _, log := newTestService(t)

	resp, err := svc.Create(context.Background(), nil, &dto.CreatePodcastRequest{
		Title:            "No Cover",
		ShortDescription: "Audio only.",
		AudioFile:        makeFileHeader(t, "episode.mp3", "audio/mpeg", 100),
	})
	require.NoError(t, err)

	require.NotNil(t, resp.ImageURL)
	assert.Equal(t, "/default-cover.png", *resp.ImageURL)
	assert.Equal(t, 0, log.count("save:images/"))
}

func TestCreateValidationRunsBeforeStorage(t *testing.T) {
	svc, repo, _, log := newTestService(t)

	cases := []struct {
		name string
		req  *dto.CreatePodcastRequest
	}{
		{
			name: "missing title",
			req: &dto.CreatePodcastRequest{
				ShortDescription: "desc",
				AudioFile:        makeFileHeader(t, "a.mp3", "audio/mpeg", 10),
			},
		},
		{
			name: "missing short description",
			req: &dto.CreatePodcastRequest{
				Title:     "Title",
				AudioFile: makeFileHeader(t, "a.mp3", "audio/mpeg", 10),
			},
		},
		{
			name: "short description too long",
			req: &dto.CreatePodcastRequest{
				Title:            "Title",
				ShortDescription: strings.Repeat("x", 201),
				AudioFile:        makeFileHeader(t, "a.mp3", "audio/mpeg", 10),
			},
		},
		{
			name: "no audio source",
			req: &dto.CreatePodcastRequest{
				Title:            "Title",
				ShortDescription: "desc",
			},
		},
		{
			name: "audio too large",
			req: &dto.CreatePodcastRequest{
				Title:            "Title",
				ShortDescription: "desc",
				AudioFile:        makeFileHeader(t, "a.mp3", "audio/mpeg", 2048),
			},
		},
		{
			name: "image wrong type",
			req: &dto.CreatePodcastRequest{
				Title:            "Title",
				ShortDescription: "desc",
				AudioFile:        makeFileHeader(t, "a.mp3", "audio/mpeg", 10),
				ImageFile:        makeFileHeader(t, "doc.pdf", "application/pdf", 10),
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), nil, tc.req)
			require.Error(t, err)
		})
	}

	// A rejected request has no side effects on either store.
	assert.Empty(t, log.events)
	assert.Empty(t, repo.records)
}

func TestCreateAudioSourceRequired(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Create(context.Background(), nil, &dto.CreatePodcastRequest{
		Title:            "Title",
		ShortDescription: "desc",
	})
	assert.ErrorIs(t, err, apperrors.ErrAudioSourceRequired)
}

func TestCreateAudioStoreFailureAborts(t *testing.T) {
	svc, repo, store, log := newTestService(t)
	store.failSavePrefix = "audio/"

	_, err := svc.Create(context.Background(), nil, &dto.CreatePodcastRequest{
		Title:            "Title",
		ShortDescription: "desc",
		AudioFile:        makeFileHeader(t, "a.mp3", "audio/mpeg", 10),
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeStorageError, appErr.Code)
	assert.Empty(t, repo.records)
	assert.Equal(t, -1, log.firstIndex("repo.create:"))
}

func TestCreateImageStoreFailureDiscardsStoredAudio(t *testing.T) {
	svc, repo, store, log := newTestService(t)
	store.failSavePrefix = "images/"

	_, err := svc.Create(context.Background(), nil, &dto.CreatePodcastRequest{
		Title:            "Title",
		ShortDescription: "desc",
		AudioFile:        makeFileHeader(t, "a.mp3", "audio/mpeg", 10),
		ImageFile:        makeFileHeader(t, "c.png", "image/png", 10),
	})
	require.Error(t, err)

	// The audio object stored earlier in the request is cleaned up.
	assert.Equal(t, 1, log.count("save:audio/"))
	assert.Equal(t, 1, log.count("delete:/files/audio/"))
	assert.Empty(t, repo.records)
	assert.Empty(t, store.objects)
}

func TestCreateInsertFailureLeavesOrphans(t *testing.T) {
	svc, repo, store, log := newTestService(t)
	repo.failCreate = true

	_, err := svc.Create(context.Background(), nil, &dto.CreatePodcastRequest{
		Title:            "Title",
		ShortDescription: "desc",
		AudioFile:        makeFileHeader(t, "a.mp3", "audio/mpeg", 10),
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 500, appErr.HTTPCode)

	// No cross-store rollback: the stored object stays behind.
	assert.Len(t, store.objects, 1)
	assert.Empty(t, store.deleteByURLCalls)
	assert.Equal(t, 0, log.count("delete:"))
}

func TestCreateClientDirectURLs(t *testing.T) {
	svc, repo, _, log := newTestService(t)

	resp, err := svc.Create(context.Background(), nil, &dto.CreatePodcastRequest{
		Title:            "Direct Upload",
		ShortDescription: "Bytes went straight to the blob store.",
		AudioURL:         "/files/audio/pre-uploaded.mp3",
		ImageURL:         "/files/images/pre-uploaded.png",
	})
	require.NoError(t, err)

	assert.Equal(t, "/files/audio/pre-uploaded.mp3", resp.AudioURL)
	require.NotNil(t, resp.ImageURL)
	assert.Equal(t, "/files/images/pre-uploaded.png", *resp.ImageURL)
	assert.Len(t, repo.records, 1)
	assert.Equal(t, 0, log.count("save:"))
}

func TestUpdateOrderingStoreCommitDelete(t *testing.T) {
	svc, repo, _, log := newTestService(t)
	id := seedPodcast(repo, "/files/audio/old.mp3", "/files/images/old.png")

	resp, err := svc.Update(context.Background(), nil, id, &dto.UpdatePodcastRequest{
		AudioFile: makeFileHeader(t, "new.mp3", "audio/mpeg", 10),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.AudioURL, "/files/audio/"))
	assert.NotEqual(t, "/files/audio/old.mp3", resp.AudioURL)

	saveIdx := log.firstIndex("save:audio/")
	commitIdx := log.firstIndex("repo.save:")
	deleteIdx := log.firstIndex("delete:/files/audio/old.mp3")
	require.GreaterOrEqual(t, saveIdx, 0)
	require.GreaterOrEqual(t, commitIdx, 0)
	require.GreaterOrEqual(t, deleteIdx, 0)
	assert.Less(t, saveIdx, commitIdx, "new object must be stored before the metadata commit")
	assert.Less(t, commitIdx, deleteIdx, "old object must only be deleted after the metadata commit")

	// The untouched image keeps its object.
	assert.Equal(t, 0, log.count("delete:/files/images/"))
}

func TestUpdateOldDeleteFailureTolerated(t *testing.T) {
	svc, repo, store, _ := newTestService(t)
	id := seedPodcast(repo, "/files/audio/old.mp3", "")
	store.failDeleteByURL = true

	resp, err := svc.Update(context.Background(), nil, id, &dto.UpdatePodcastRequest{
		AudioFile: makeFileHeader(t, "new.mp3", "audio/mpeg", 10),
	})
	require.NoError(t, err)

	// The record points at the new object even though cleanup failed.
	stored := repo.records[id]
	assert.Equal(t, resp.AudioURL, stored.AudioURL)
	assert.Equal(t, []string{"/files/audio/old.mp3"}, store.deleteByURLCalls)
}

func TestUpdateNeverDeletesUnmanagedPaths(t *testing.T) {
	svc, repo, store, _ := newTestService(t)
	id := seedPodcast(repo, "/uploads/audio/sample.mp3", "/default-cover.png")

	_, err := svc.Update(context.Background(), nil, id, &dto.UpdatePodcastRequest{
		AudioFile: makeFileHeader(t, "new.mp3", "audio/mpeg", 10),
		ImageFile: makeFileHeader(t, "new.png", "image/png", 10),
	})
	require.NoError(t, err)

	// Static bundled paths fail the Owns predicate and are never deleted.
	assert.Empty(t, store.deleteByURLCalls)
}

func TestUpdateCommitFailureKeepsMetadataAndOldObjects(t *testing.T) {
	svc, repo, store, log := newTestService(t)
	id := seedPodcast(repo, "/files/audio/old.mp3", "")
	repo.failSave = true

	_, err := svc.Update(context.Background(), nil, id, &dto.UpdatePodcastRequest{
		Title:     strPtr("New Title"),
		AudioFile: makeFileHeader(t, "new.mp3", "audio/mpeg", 10),
	})
	require.Error(t, err)

	// The record is untouched and the old object survives; the new object
	// is orphaned, not deleted.
	stored := repo.records[id]
	assert.Equal(t, "Existing Episode", stored.Title)
	assert.Equal(t, "/files/audio/old.mp3", stored.AudioURL)
	assert.Empty(t, store.deleteByURLCalls)
	assert.Equal(t, 1, log.count("save:audio/"))
}

func TestUpdateImageStoreFailureDiscardsNewAudio(t *testing.T) {
	svc, repo, store, log := newTestService(t)
	id := seedPodcast(repo, "/files/audio/old.mp3", "/files/images/old.png")
	store.failSavePrefix = "images/"

	_, err := svc.Update(context.Background(), nil, id, &dto.UpdatePodcastRequest{
		AudioFile: makeFileHeader(t, "new.mp3", "audio/mpeg", 10),
		ImageFile: makeFileHeader(t, "new.png", "image/png", 10),
	})
	require.Error(t, err)

	// The new audio object from this request is discarded; the record and
	// the old objects stay untouched.
	assert.Equal(t, 1, log.count("delete:/files/audio/"))
	assert.Equal(t, 0, log.count("delete:/files/audio/old.mp3"))
	stored := repo.records[id]
	assert.Equal(t, "/files/audio/old.mp3", stored.AudioURL)
	assert.Equal(t, -1, log.firstIndex("repo.save:"))
}

func TestUpdateScalarOnlyNeverTouchesStorage(t *testing.T) {
	svc, repo, store, log := newTestService(t)
	id := seedPodcast(repo, "/files/audio/old.mp3", "/files/images/old.png")

	resp, err := svc.Update(context.Background(), nil, id, &dto.UpdatePodcastRequest{
		Title:            strPtr("Renamed"),
		ShortDescription: strPtr("New summary."),
		FullDescription:  strPtr("Longer text."),
	})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", resp.Title)
	assert.Equal(t, "/files/audio/old.mp3", resp.AudioURL)
	assert.Equal(t, 0, log.count("save:"))
	assert.Empty(t, store.deleteByURLCalls)
}

func TestUpdateEmptyImageURLRestoresDefaultCover(t *testing.T) {
	svc, repo, _, log := newTestService(t)
	id := seedPodcast(repo, "/files/audio/ep.mp3", "/files/images/old.png")

	resp, err := svc.Update(context.Background(), nil, id, &dto.UpdatePodcastRequest{
		ImageURL: strPtr(""),
	})
	require.NoError(t, err)

	require.NotNil(t, resp.ImageURL)
	assert.Equal(t, "/default-cover.png", *resp.ImageURL)
	stored := repo.records[id]
	require.NotNil(t, stored.ImageURL)
	assert.Equal(t, "/default-cover.png", *stored.ImageURL)

	// The replaced cover object is cleaned up after the commit.
	commitIdx := log.firstIndex("repo.save:")
	deleteIdx := log.firstIndex("delete:/files/images/old.png")
	require.GreaterOrEqual(t, deleteIdx, 0)
	assert.Less(t, commitIdx, deleteIdx)
}

func TestUpdateSameURLNotDeleted(t *testing.T) {
	svc, repo, store, _ := newTestService(t)
	id := seedPodcast(repo, "/files/audio/keep.mp3", "")

	_, err := svc.Update(context.Background(), nil, id, &dto.UpdatePodcastRequest{
		AudioURL: strPtr("/files/audio/keep.mp3"),
	})
	require.NoError(t, err)

	// Re-submitting the current URL must not delete the object it names.
	assert.Empty(t, store.deleteByURLCalls)
}

func TestUpdateValidation(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	id := seedPodcast(repo, "/files/audio/old.mp3", "")

	_, err := svc.Update(context.Background(), nil, id, &dto.UpdatePodcastRequest{
		Title: strPtr("   "),
	})
	require.Error(t, err)

	_, err = svc.Update(context.Background(), nil, id, &dto.UpdatePodcastRequest{
		ShortDescription: strPtr(strings.Repeat("x", 201)),
	})
	require.Error(t, err)

	stored := repo.records[id]
	assert.Equal(t, "Existing Episode", stored.Title)
}

func TestUpdateNotFound(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Update(context.Background(), nil, uuid.NewString(), &dto.UpdatePodcastRequest{
		Title: strPtr("New"),
	})
	assert.ErrorIs(t, err, apperrors.ErrPodcastNotFound)
}

func TestDeleteRemovesRecordAndManagedObjects(t *testing.T) {
	svc, repo, _, log := newTestService(t)
	id := seedPodcast(repo, "/files/audio/ep.mp3", "/files/images/cover.png")

	require.NoError(t, svc.Delete(context.Background(), nil, id))

	assert.Empty(t, repo.records)
	assert.Equal(t, 1, log.count("delete:/files/audio/ep.mp3"))
	assert.Equal(t, 1, log.count("delete:/files/images/cover.png"))
}

func TestDeleteSkipsDefaultCover(t *testing.T) {
	svc, repo, store, _ := newTestService(t)
	id := seedPodcast(repo, "/files/audio/ep.mp3", "/default-cover.png")

	require.NoError(t, svc.Delete(context.Background(), nil, id))

	assert.Equal(t, []string{"/files/audio/ep.mp3"}, store.deleteByURLCalls)
}

func TestDeleteBlobFailureStillRemovesRow(t *testing.T) {
	svc, repo, store, log := newTestService(t)
	id := seedPodcast(repo, "/files/audio/ep.mp3", "/files/images/cover.png")
	store.failDeleteByURL = true

	require.NoError(t, svc.Delete(context.Background(), nil, id))

	assert.Empty(t, repo.records)
	// Both deletes were attempted despite the first one failing.
	assert.Len(t, store.deleteByURLCalls, 2)
	assert.Equal(t, 1, log.count("repo.delete:"))
}

func TestDeleteNotFound(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	err := svc.Delete(context.Background(), nil, uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrPodcastNotFound)
}

func TestGetNotFound(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Get(nil, uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrPodcastNotFound)
}

func TestListOrdersNewestFirst(t *testing.T) {
	svc, repo, _, _ := newTestService(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	// Inserted out of order on purpose.
	for i, offset := range []int{1, 2, 0} {
		record := models.Podcast{
			Title:            fmt.Sprintf("Episode %d", offset),
			ShortDescription: "desc",
			AudioURL:         "/files/audio/ep.mp3",
		}
		record.ID = fmt.Sprintf("p-%d", i)
		record.CreatedAt = base.Add(time.Duration(offset) * time.Hour)
		repo.records[record.ID] = record
	}

	list, err := svc.List(nil)
	require.NoError(t, err)
	require.Len(t, list, 3)

	for i := 1; i < len(list); i++ {
		assert.True(t, !list[i-1].CreatedAt.Before(list[i].CreatedAt),
			"list[%d] (%s) must not be older than list[%d] (%s)",
			i-1, list[i-1].CreatedAt, i, list[i].CreatedAt)
	}
	assert.Equal(t, "Episode 2", list[0].Title)
	assert.Equal(t, "Episode 0", list[2].Title)
}

func TestObjectKeyIsUniqueAndSanitized(t *testing.T) {
	a := ObjectKey(CategoryAudio, "my episode (final).mp3")
	b := ObjectKey(CategoryAudio, "my episode (final).mp3")

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "audio/"))
	assert.True(t, strings.HasSuffix(a, "my-episode--final-.mp3"))
	assert.NotContains(t, a, " ")
}

func TestSanitizeFilenameStripsPaths(t *testing.T) {
	assert.Equal(t, "evil.mp3", sanitizeFilename("../../evil.mp3"))
	assert.Equal(t, "file", sanitizeFilename(""))
}

func TestMimeTypeFromFilename(t *testing.T) {
	assert.Equal(t, "audio/mpeg", mimeTypeFromFilename("ep.MP3"))
	assert.Equal(t, "image/webp", mimeTypeFromFilename("c.webp"))
	assert.Equal(t, "application/octet-stream", mimeTypeFromFilename("c.xyz"))
}
