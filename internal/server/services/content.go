package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/linguoapp/linguo/internal/models"
	sc "github.com/linguoapp/linguo/internal/server/config"
	smodels "github.com/linguoapp/linguo/internal/server/models"
	"github.com/linguoapp/linguo/internal/server/repositories/repomanager"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

// GetRandomStorageKey builds a collision-free object key for freshly
// uploaded narration audio.
func GetRandomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("audio/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

// ContentService serves the published deck catalog and full deck documents.
// Audio lives in an S3-compatible object store; the service mints short-lived
// presigned GET URLs so clients download narration directly from storage.
type ContentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewContentService(db *sql.DB, repomanager repomanager.RepositoryManager, config *sc.Config) *ContentService {
	return &ContentService{
		db:          db,
		repomanager: repomanager,
		config:      config,
	}
}

func (s *ContentService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

func (s *ContentService) presignAudioURL(ctx context.Context, pc *s3.PresignClient, key string) (string, error) {
	bucket := s.config.S3Bucket

	req, err := presignGetObject(pc, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

// Catalog lists every published deck as a catalog entry. baseURL is the
// server's public address, used to build each entry's deck document locator.
func (s *ContentService) Catalog(ctx context.Context, baseURL string) ([]models.CatalogEntry, error) {
	repo := s.repomanager.Decks(s.db)
	records, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing decks: %w", err)
	}

	pc, err := s.getPresignClient()
	if err != nil {
		return nil, fmt.Errorf("error creating presign client: %w", err)
	}

	entries := make([]models.CatalogEntry, 0, len(records))
	for _, rec := range records {
		audioURL, err := s.presignAudioURL(ctx, pc, rec.AudioKey)
		if err != nil {
			return nil, fmt.Errorf("error presigning audio for %s: %w", rec.ID, err)
		}

		entries = append(entries, models.CatalogEntry{
			ID:             rec.ID,
			DeckName:       rec.DeckName,
			Group:          rec.DeckGroup,
			TotalSentences: int(rec.TotalSentences),
			TotalDuration:  rec.TotalDuration,
			DeckURL:        fmt.Sprintf("%s/api/decks/%s", baseURL, rec.ID),
			AudioURL:       audioURL,
		})
	}

	return entries, nil
}

// GetPresignedUploadURL mints a storage key and a short-lived presigned PUT
// URL so publishing tooling can upload narration audio directly to the
// object store. The returned key goes into the deck record on publish.
func (s *ContentService) GetPresignedUploadURL(ctx context.Context) (string, string, error) {
	pc, err := s.getPresignClient()
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket
	key := GetRandomStorageKey()

	req, err := presignPutObject(pc, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

// PublishDeck inserts or replaces one published deck.
func (s *ContentService) PublishDeck(ctx context.Context, rec *smodels.DeckRecord) error {
	if rec.ID == "" || rec.DeckName == "" {
		return fmt.Errorf("deck id and name are required")
	}
	if rec.AudioKey == "" {
		return fmt.Errorf("audio key is required")
	}

	repo := s.repomanager.Decks(s.db)
	if err := repo.Upsert(ctx, rec); err != nil {
		return fmt.Errorf("error saving deck %s: %w", rec.ID, err)
	}
	return nil
}

// DeckPayload returns the full deck document with a fresh presigned audio URL.
func (s *ContentService) DeckPayload(ctx context.Context, id string) (*models.DeckPayload, error) {
	repo := s.repomanager.Decks(s.db)
	rec, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	payload := &models.DeckPayload{}
	if err := json.Unmarshal(rec.Payload, payload); err != nil {
		return nil, fmt.Errorf("error decoding deck %s: %w", id, err)
	}
	payload.ID = rec.ID
	if payload.DeckName == "" {
		payload.DeckName = rec.DeckName
	}

	pc, err := s.getPresignClient()
	if err != nil {
		return nil, fmt.Errorf("error creating presign client: %w", err)
	}
	audioURL, err := s.presignAudioURL(ctx, pc, rec.AudioKey)
	if err != nil {
		return nil, fmt.Errorf("error presigning audio for %s: %w", id, err)
	}
	payload.AudioURL = audioURL

	return payload, nil
}
