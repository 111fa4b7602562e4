/*
Package storagemodels defines the data structures shared by the entity sources.

QueryParams:
Parameters for querying DynamoDB:

	params := &QueryParams{
	    TableName:              "library",
	    KeyConditionExpression: "PK = :pk",
	    ExpressionAttributeValues: map[string]types.AttributeValue{
	        ":pk": &types.AttributeValueMemberS{Value: "SHELF#1"},
	    },
	}

StreamResult:
Each streamed item is hydrated through the alias stored in its EntityType attribute:

	type StreamResult struct {
	    Alias string                          // Alias used to construct Item
	    Item  model.Model                     // The constructed entity
	    Raw   map[string]types.AttributeValue // Raw DynamoDB attributes
	    Error error                           // Item-specific error, if any
	    Meta  StreamMeta                      // Metadata about this item
	}

StreamOptions:
Configuration for streaming behavior:

	opts := []StreamOption{
	    WithBufferSize(100),
	    WithPageSize(25),
	    WithMaxRetries(3),
	    WithProgressHandler(progressFunc),
	}
*/
package storagemodels
