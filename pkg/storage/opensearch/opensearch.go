package opensearch

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"
	"github.com/sirupsen/logrus"

	"github.com/sakanhq/sakan-backend/pkg/models"
	"github.com/sakanhq/sakan-backend/pkg/storage/model"
)

var log = logrus.StandardLogger().WithField("package", "storage/opensearch")

const (
	DefaultApplicationsIndex = "applications"
	DefaultCatalogIndex      = "catalog"
)

type Config struct {
	Addr               string
	Username           string
	Password           string
	InsecureSkipVerify bool
	ApplicationsIndex  string
	CatalogIndex       string
}

// Store keeps one OpenSearch document per application and one per
// catalog entry. Application writes replace the whole snapshot
// (last-write-wins, see model.ApplicationStore).
type Store struct {
	client            *opensearch.Client
	applicationsIndex string
	catalogIndex      string
}

var _ model.Store = (*Store)(nil)

func New(cfg Config) (*Store, error) {
	var transport http.RoundTripper
	if cfg.InsecureSkipVerify {
		transport = &http.Transport{TLSClientConfig: &tls.Config{InsecureSkipVerify: true}}
	} else {
		transport = http.DefaultTransport
	}

	client, err := opensearch.NewClient(opensearch.Config{
		Addresses: []string{cfg.Addr},
		Username:  cfg.Username,
		Password:  cfg.Password,
		Transport: transport,
	})
	if err != nil {
		return nil, err
	}

	s := &Store{
		client:            client,
		applicationsIndex: cfg.ApplicationsIndex,
		catalogIndex:      cfg.CatalogIndex,
	}
	if s.applicationsIndex == "" {
		s.applicationsIndex = DefaultApplicationsIndex
	}
	if s.catalogIndex == "" {
		s.catalogIndex = DefaultCatalogIndex
	}

	if err := s.ping(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) ping() error {
	req := opensearchapi.PingRequest{}
	res, err := req.Do(context.Background(), s.client)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("unable to ping opensearch: %s", res.Status())
	}
	return nil
}

// document is the OpenSearch get-by-id envelope.
type document[T any] struct {
	Id     string `json:"_id"`
	Found  bool   `json:"found"`
	Source T      `json:"_source"`
}

func (s *Store) GetApplication(id string) (*models.Application, error) {
	req := opensearchapi.GetRequest{Index: s.applicationsIndex, DocumentID: id}
	res, err := req.Do(context.Background(), s.client)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, os.ErrNotExist
	}
	if res.IsError() {
		return nil, fmt.Errorf("unable to get application %s: %s", id, res.Status())
	}

	var doc document[models.Application]
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode application %s: %w", id, err)
	}
	if !doc.Found {
		return nil, os.ErrNotExist
	}
	return &doc.Source, nil
}

func (s *Store) PutApplication(app models.Application) error {
	if app.ID == "" {
		return fmt.Errorf("application id is required")
	}
	body, err := json.Marshal(app)
	if err != nil {
		return fmt.Errorf("encode application %s: %w", app.ID, err)
	}

	req := opensearchapi.IndexRequest{
		Index:      s.applicationsIndex,
		DocumentID: app.ID,
		Body:       bytes.NewReader(body),
	}
	res, err := req.Do(context.Background(), s.client)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("unable to index application %s: %s", app.ID, res.Status())
	}
	log.Debugf("indexed application %s", app.ID)
	return nil
}

func (s *Store) Catalog() ([]models.CatalogEntry, error) {
	size := 1000
	req := opensearchapi.SearchRequest{
		Index: []string{s.catalogIndex},
		Sort:  []string{"sortKey:asc"},
		Size:  &size,
	}
	res, err := req.Do(context.Background(), s.client)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("unable to list catalog: %s", res.Status())
	}

	var result struct {
		Hits struct {
			Hits []document[models.CatalogEntry] `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	var entries []models.CatalogEntry
	for _, hit := range result.Hits.Hits {
		entries = append(entries, hit.Source)
	}
	return entries, nil
}

func (s *Store) PutCatalog(entries []models.CatalogEntry) error {
	for _, entry := range entries {
		body, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("encode catalog entry %s: %w", entry.ID, err)
		}
		req := opensearchapi.IndexRequest{
			Index:      s.catalogIndex,
			DocumentID: entry.ID,
			Body:       bytes.NewReader(body),
		}
		res, err := req.Do(context.Background(), s.client)
		if err != nil {
			return err
		}
		res.Body.Close()
		if res.IsError() {
			return fmt.Errorf("unable to index catalog entry %s: %s", entry.ID, res.Status())
		}
	}
	return nil
}
