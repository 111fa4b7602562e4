/*
Package datastore defines how stored records become entities.

Records carry the alias they should be constructed through rather than a concrete
type, so rebinding an alias changes what every later read produces:

	type Source interface {
	    Query(ctx context.Context, params *storagemodels.QueryParams) ([]model.Model, error)
	    Stream(ctx context.Context, params *storagemodels.QueryParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult
	}

Implementations:
  - ddb: DynamoDB items tagged with an EntityType attribute
  - mock: In-memory records for testing

Writing records is left to the application.
*/
package datastore
