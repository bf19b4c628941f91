package shopify

// MetafieldDefinitionCreateMutation creates a metafield definition on the target store
const MetafieldDefinitionCreateMutation = `
mutation metafieldDefinitionCreate($definition: MetafieldDefinitionInput!) {
  metafieldDefinitionCreate(definition: $definition) {
    createdDefinition {
      id
      namespace
      key
    }
    userErrors {
      field
      message
    }
  }
}
`

// MetafieldDefinitionUpdateMutation updates an existing definition in place.
// The definition's type cannot be changed through this mutation.
const MetafieldDefinitionUpdateMutation = `
mutation metafieldDefinitionUpdate($definition: MetafieldDefinitionUpdateInput!) {
  metafieldDefinitionUpdate(definition: $definition) {
    updatedDefinition {
      id
      namespace
      key
    }
    userErrors {
      field
      message
    }
  }
}
`

// MetafieldDefinitionDeleteMutation deletes a definition by GID. Associated
// metafield values are kept; only the definition is removed.
const MetafieldDefinitionDeleteMutation = `
mutation metafieldDefinitionDelete($id: ID!) {
  metafieldDefinitionDelete(id: $id) {
    deletedDefinitionId
    userErrors {
      field
      message
    }
  }
}
`

// MetafieldDefinitionInput is the payload for metafieldDefinitionCreate
type MetafieldDefinitionInput struct {
	Namespace   string            `json:"namespace"`
	Key         string            `json:"key"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Type        string            `json:"type"`
	OwnerType   string            `json:"ownerType"`
	Validations []ValidationInput `json:"validations"`
}

// MetafieldDefinitionUpdateInput is the payload for metafieldDefinitionUpdate.
// The definition is addressed by namespace/key/ownerType; type is immutable.
// Description is always sent, so clearing a description on the source
// actually clears it on the target instead of leaving the old text behind.
type MetafieldDefinitionUpdateInput struct {
	Namespace   string            `json:"namespace"`
	Key         string            `json:"key"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	OwnerType   string            `json:"ownerType"`
	Validations []ValidationInput `json:"validations"`
}

// ValidationInput is one validation constraint on a definition input
type ValidationInput struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// UserError is a Shopify mutation-level error
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}
