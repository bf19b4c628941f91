package service

import (
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/metasync/internal/domain"
	"github.com/jafarshop/metasync/internal/shopify"
)

// pageDelay is the pause between paginated calls, a rate limiting precaution
var pageDelay = 500 * time.Millisecond

type Exporter struct {
	client *shopify.Client
	logger *zap.Logger
}

// NewExporter creates an exporter bound to one store's client
func NewExporter(client *shopify.Client, logger *zap.Logger) *Exporter {
	return &Exporter{
		client: client,
		logger: logger,
	}
}

// Export fetches the store's metafield definitions, one paginated query per
// owner type, and returns them as a snapshot.
func (e *Exporter) Export() (domain.Snapshot, error) {
	snap := make(domain.Snapshot, len(domain.AllOwnerTypes()))
	for _, ownerType := range domain.AllOwnerTypes() {
		defs, err := e.fetchOwnerType(ownerType)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s definitions: %w", ownerType, err)
		}
		e.logger.Info("fetched definitions",
			zap.String("owner_type", string(ownerType)),
			zap.Int("count", len(defs)))
		snap[ownerType] = defs
	}
	return snap, nil
}

func (e *Exporter) fetchOwnerType(ownerType domain.OwnerType) ([]domain.Definition, error) {
	defs := []domain.Definition{}
	after := ""
	page := 0

	for {
		variables := map[string]interface{}{
			"ownerType": string(ownerType),
		}
		if after != "" {
			variables["after"] = after
		}

		resp, err := e.client.Execute(shopify.MetafieldDefinitionsQuery, variables)
		if err != nil {
			return nil, err
		}

		var result struct {
			MetafieldDefinitions struct {
				PageInfo struct {
					HasNextPage bool   `json:"hasNextPage"`
					EndCursor   string `json:"endCursor"`
				} `json:"pageInfo"`
				Edges []struct {
					Node struct {
						Namespace   string `json:"namespace"`
						Key         string `json:"key"`
						Name        string `json:"name"`
						Description string `json:"description"`
						Type        struct {
							Name string `json:"name"`
						} `json:"type"`
						Validations []domain.Validation `json:"validations"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"metafieldDefinitions"`
		}

		if err := json.Unmarshal(resp.Data, &result); err != nil {
			return nil, fmt.Errorf("failed to parse definitions response: %w", err)
		}

		page++
		for _, edge := range result.MetafieldDefinitions.Edges {
			node := edge.Node
			validations := node.Validations
			if validations == nil {
				validations = []domain.Validation{}
			}
			defs = append(defs, domain.Definition{
				OwnerType:   ownerType,
				Namespace:   node.Namespace,
				Key:         node.Key,
				Name:        node.Name,
				Type:        node.Type.Name,
				Description: node.Description,
				Validations: validations,
			})
		}

		e.logger.Debug("fetched page",
			zap.String("owner_type", string(ownerType)),
			zap.Int("page", page),
			zap.Int("page_size", len(result.MetafieldDefinitions.Edges)))

		if !result.MetafieldDefinitions.PageInfo.HasNextPage {
			return defs, nil
		}
		after = result.MetafieldDefinitions.PageInfo.EndCursor
		time.Sleep(pageDelay)
	}
}
