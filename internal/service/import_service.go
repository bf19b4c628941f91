package service

import (
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/jafarshop/metasync/internal/domain"
	"github.com/jafarshop/metasync/internal/shopify"
)

// ImportOptions controls how an import run treats each diff entry
type ImportOptions struct {
	DryRun      bool
	DeleteExtra bool
	// Confirm asks the user before a destructive action. Leaving it nil (as
	// quiet mode does) means no destructive action is ever taken.
	Confirm func(prompt string) bool
	Out     io.Writer
}

// ImportResult summarizes one import run
type ImportResult struct {
	Created         int
	Updated         int
	Deleted         int
	SkippedExisting int
	SkippedType     int
	ExtrasReported  int
	Failed          int
}

type Importer struct {
	client *shopify.Client
	logger *zap.Logger
	opts   ImportOptions
}

// NewImporter creates an importer bound to the target store's client
func NewImporter(client *shopify.Client, logger *zap.Logger, opts ImportOptions) *Importer {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	return &Importer{
		client: client,
		logger: logger,
		opts:   opts,
	}
}

// Run applies a diff against the target store: create for missing_in_target,
// update for changed, report for extra_in_target. Per-entry failures are
// counted and the run continues; the caller decides the exit status from
// Result.Failed.
func (im *Importer) Run(entries []domain.DiffEntry) ImportResult {
	var result ImportResult
	for _, entry := range entries {
		switch entry.Status {
		case domain.DiffStatusMissingInTarget:
			im.applyMissing(entry, &result)
		case domain.DiffStatusChanged:
			im.applyChanged(entry, &result)
		case domain.DiffStatusExtraInTarget:
			im.applyExtra(entry, &result)
		}
	}
	return result
}

func (im *Importer) applyMissing(entry domain.DiffEntry, result *ImportResult) {
	def := *entry.Source
	if im.opts.DryRun {
		fmt.Fprintf(im.opts.Out, "would create %s (%s)\n", entry.Identity, def.Type)
		return
	}

	existingID, err := im.lookupDefinitionID(entry.Identity)
	if err != nil {
		im.fail(entry, "existence check failed", err, result)
		return
	}
	if existingID != "" {
		fmt.Fprintf(im.opts.Out, "skipped %s: already exists in target\n", entry.Identity)
		result.SkippedExisting++
		return
	}

	if err := im.createDefinition(def); err != nil {
		im.fail(entry, "create failed", err, result)
		return
	}
	fmt.Fprintf(im.opts.Out, "created %s\n", entry.Identity)
	result.Created++
}

func (im *Importer) applyChanged(entry domain.DiffEntry, result *ImportResult) {
	for _, field := range entry.ChangedFields {
		if field == "type" {
			// Shopify rejects type changes on update; recreating the
			// definition would drop its stored values, so report and move on.
			fmt.Fprintf(im.opts.Out, "skipped %s: type changed (%s -> %s), cannot be updated in place\n",
				entry.Identity, entry.Target.Type, entry.Source.Type)
			result.SkippedType++
			return
		}
	}

	if im.opts.DryRun {
		fmt.Fprintf(im.opts.Out, "would update %s (%v)\n", entry.Identity, entry.ChangedFields)
		return
	}

	existingID, err := im.lookupDefinitionID(entry.Identity)
	if err != nil {
		im.fail(entry, "lookup failed", err, result)
		return
	}
	if existingID == "" {
		im.fail(entry, "update failed", fmt.Errorf("definition not found in target"), result)
		return
	}

	if err := im.updateDefinition(*entry.Source); err != nil {
		im.fail(entry, "update failed", err, result)
		return
	}
	fmt.Fprintf(im.opts.Out, "updated %s (%v)\n", entry.Identity, entry.ChangedFields)
	result.Updated++
}

func (im *Importer) applyExtra(entry domain.DiffEntry, result *ImportResult) {
	if !im.opts.DeleteExtra {
		fmt.Fprintf(im.opts.Out, "extra in target: %s (not deleted)\n", entry.Identity)
		result.ExtrasReported++
		return
	}

	if im.opts.DryRun {
		fmt.Fprintf(im.opts.Out, "would ask to delete %s\n", entry.Identity)
		return
	}

	// Deleting a definition is destructive; it happens only on an explicit
	// per-entry confirmation.
	if im.opts.Confirm == nil || !im.opts.Confirm(fmt.Sprintf("Delete %s from target?", entry.Identity)) {
		fmt.Fprintf(im.opts.Out, "kept %s (not confirmed)\n", entry.Identity)
		result.ExtrasReported++
		return
	}

	id, err := im.lookupDefinitionID(entry.Identity)
	if err != nil {
		im.fail(entry, "lookup failed", err, result)
		return
	}
	if id == "" {
		fmt.Fprintf(im.opts.Out, "skipped %s: already absent from target\n", entry.Identity)
		return
	}
	if err := im.deleteDefinition(id); err != nil {
		im.fail(entry, "delete failed", err, result)
		return
	}
	fmt.Fprintf(im.opts.Out, "deleted %s\n", entry.Identity)
	result.Deleted++
}

func (im *Importer) fail(entry domain.DiffEntry, msg string, err error, result *ImportResult) {
	fmt.Fprintf(im.opts.Out, "failed %s: %s: %v\n", entry.Identity, msg, err)
	im.logger.Error("import entry failed",
		zap.String("definition", entry.Identity.String()),
		zap.String("status", string(entry.Status)),
		zap.Error(err))
	result.Failed++
}

// lookupDefinitionID resolves a definition's GID on the target store, or ""
// when no definition exists for the identity.
func (im *Importer) lookupDefinitionID(id domain.Identity) (string, error) {
	variables := map[string]interface{}{
		"ownerType": string(id.OwnerType),
		"namespace": id.Namespace,
		"key":       id.Key,
	}
	resp, err := im.client.Execute(shopify.MetafieldDefinitionLookupQuery, variables)
	if err != nil {
		return "", err
	}

	var result struct {
		MetafieldDefinitions struct {
			Edges []struct {
				Node struct {
					ID string `json:"id"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"metafieldDefinitions"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return "", fmt.Errorf("failed to parse lookup response: %w", err)
	}
	if len(result.MetafieldDefinitions.Edges) == 0 {
		return "", nil
	}
	return result.MetafieldDefinitions.Edges[0].Node.ID, nil
}

func (im *Importer) createDefinition(def domain.Definition) error {
	variables := map[string]interface{}{
		"definition": shopify.MetafieldDefinitionInput{
			Namespace:   def.Namespace,
			Key:         def.Key,
			Name:        def.Name,
			Description: def.Description,
			Type:        def.Type,
			OwnerType:   string(def.OwnerType),
			Validations: validationInputs(def.Validations),
		},
	}

	resp, err := im.client.Execute(shopify.MetafieldDefinitionCreateMutation, variables)
	if err != nil {
		return err
	}

	var result struct {
		MetafieldDefinitionCreate struct {
			CreatedDefinition struct {
				ID string `json:"id"`
			} `json:"createdDefinition"`
			UserErrors []shopify.UserError `json:"userErrors"`
		} `json:"metafieldDefinitionCreate"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return fmt.Errorf("failed to parse create response: %w", err)
	}
	return userErrorsToError(result.MetafieldDefinitionCreate.UserErrors)
}

func (im *Importer) updateDefinition(def domain.Definition) error {
	variables := map[string]interface{}{
		"definition": shopify.MetafieldDefinitionUpdateInput{
			Namespace:   def.Namespace,
			Key:         def.Key,
			Name:        def.Name,
			Description: def.Description,
			OwnerType:   string(def.OwnerType),
			Validations: validationInputs(def.Validations),
		},
	}

	resp, err := im.client.Execute(shopify.MetafieldDefinitionUpdateMutation, variables)
	if err != nil {
		return err
	}

	var result struct {
		MetafieldDefinitionUpdate struct {
			UpdatedDefinition struct {
				ID string `json:"id"`
			} `json:"updatedDefinition"`
			UserErrors []shopify.UserError `json:"userErrors"`
		} `json:"metafieldDefinitionUpdate"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return fmt.Errorf("failed to parse update response: %w", err)
	}
	return userErrorsToError(result.MetafieldDefinitionUpdate.UserErrors)
}

func (im *Importer) deleteDefinition(id string) error {
	variables := map[string]interface{}{
		"id": id,
	}

	resp, err := im.client.Execute(shopify.MetafieldDefinitionDeleteMutation, variables)
	if err != nil {
		return err
	}

	var result struct {
		MetafieldDefinitionDelete struct {
			DeletedDefinitionID string              `json:"deletedDefinitionId"`
			UserErrors          []shopify.UserError `json:"userErrors"`
		} `json:"metafieldDefinitionDelete"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return fmt.Errorf("failed to parse delete response: %w", err)
	}
	return userErrorsToError(result.MetafieldDefinitionDelete.UserErrors)
}

func validationInputs(validations []domain.Validation) []shopify.ValidationInput {
	inputs := make([]shopify.ValidationInput, 0, len(validations))
	for _, v := range validations {
		inputs = append(inputs, shopify.ValidationInput{Name: v.Name, Value: v.Value})
	}
	return inputs
}

func userErrorsToError(userErrors []shopify.UserError) error {
	if len(userErrors) == 0 {
		return nil
	}
	return fmt.Errorf("shopify user errors: %v", userErrors)
}
