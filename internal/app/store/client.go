package store

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"confidentialclaus/internal/configs"
	"confidentialclaus/internal/pkg/logx"
)

// NewClient initializes the DynamoDB client from application configuration.
// Static credentials and a custom endpoint are optional and only wired in when
// configured, so production deployments fall back to the SDK's default
// credential chain while local development can target a DynamoDB Local instance.
func NewClient(ctx context.Context, cfg *configs.AppConfig) (*dynamodb.Client, error) {
	loadOptions := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.AWSRegion),
	}

	if cfg.AWSAccessKeyID != "" {
		loadOptions = append(loadOptions, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AWSAccessKeyID,
				cfg.AWSSecretAccessKey,
				"",
			),
		))
	}

	sdkCfg, err := config.LoadDefaultConfig(ctx, loadOptions...)
	if err != nil {
		logx.Error(err, "Failed to load AWS SDK config")
		return nil, errors.New("failed to initialize DynamoDB client configuration")
	}

	client := dynamodb.NewFromConfig(sdkCfg, func(o *dynamodb.Options) {
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	})

	return client, nil
}
