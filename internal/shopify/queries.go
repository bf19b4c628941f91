package shopify

// MetafieldDefinitionsQuery pages through the metafield definitions of one
// owner type. The nested type { name } is flattened by the caller.
const MetafieldDefinitionsQuery = `
query metafieldDefinitions($after: String, $ownerType: MetafieldOwnerType!) {
  metafieldDefinitions(first: 100, after: $after, ownerType: $ownerType) {
    pageInfo {
      hasNextPage
      endCursor
    }
    edges {
      node {
        id
        namespace
        key
        name
        description
        type { name }
        ownerType
        validations { name value }
      }
    }
  }
}
`

// MetafieldDefinitionLookupQuery resolves one definition's GID by identity.
// Used before create (existence check) and before update/delete (ID lookup).
const MetafieldDefinitionLookupQuery = `
query metafieldDefinitionLookup($ownerType: MetafieldOwnerType!, $namespace: String!, $key: String!) {
  metafieldDefinitions(first: 1, ownerType: $ownerType, namespace: $namespace, key: $key) {
    edges {
      node {
        id
      }
    }
  }
}
`
