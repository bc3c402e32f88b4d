// internal/archive/indexer.go

package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"loan-wizard/internal/common/database"
	"loan-wizard/internal/common/logger"
	"loan-wizard/internal/models"
)

// Indexer mirrors archived applications into Elasticsearch for search and
// reporting. Indexing is best effort.
type Indexer struct {
	es    *database.ElasticsearchClient
	index string
	log   logger.Logger
}

func NewIndexer(es *database.ElasticsearchClient, index string, log logger.Logger) *Indexer {
	return &Indexer{es: es, index: index, log: log}
}

func (i *Indexer) Index(ctx context.Context, applicationID string, draft models.Draft, submittedAt time.Time) error {
	doc := map[string]interface{}{
		"applicationId": applicationID,
		"submittedAt":   submittedAt.UTC().Format(time.RFC3339),
		"application":   draft,
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      i.index,
		DocumentID: applicationID,
		Body:       strings.NewReader(string(body)),
	}

	res, err := req.Do(ctx, i.es.Client)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index failed: %s", res.String())
	}
	return nil
}
