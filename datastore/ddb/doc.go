/*
Package ddb hydrates DynamoDB items into entities through the hotswap registry.

Items are expected to carry an EntityType attribute holding an alias. The Hydrator
removes that attribute, unmarshals the rest into model.Attributes and calls Make:

	client, err := ddb.NewDynamoDBClient(ctx, accessKey, secretKey, region)
	h := ddb.NewHydrator(client, registry.Seal())

	books, err := h.Query(ctx, &storagemodels.QueryParams{
	    TableName:              "library",
	    KeyConditionExpression: "PK = :pk",
	    ExpressionAttributeValues: map[string]types.AttributeValue{
	        ":pk": &types.AttributeValueMemberS{Value: "SHELF#1"},
	    },
	})

An alias with no binding fails with errors.ErrNotFound, and an item without the
attribute fails with errors.ErrInvalidInput.

Streaming:
Stream follows LastEvaluatedKey across pages and retries throttling errors:

	results := h.Stream(ctx, params,
	    storagemodels.WithPageSize(25),
	    storagemodels.WithMaxRetries(3),
	    storagemodels.WithProgressHandler(func(p storagemodels.StreamProgress) {
	        logger.Info("hydrated", "items", p.ItemsProcessed)
	    }),
	)

Per-item failures are delivered as StreamResult.Error and do not stop the stream.
*/
package ddb
