// internal/common/aws/notifier.go
package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// Notifier sends transactional email through SES and SMS through SNS.
type Notifier struct {
	ses       SESService
	sns       SNSService
	fromEmail string
	senderID  string
}

// LoadConfig resolves AWS credentials from the default chain for region.
func LoadConfig(ctx context.Context, region string) (aws.Config, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return aws.Config{}, fmt.Errorf("load AWS config: %w", err)
	}
	return cfg, nil
}

func NewNotifier(cfg aws.Config, fromEmail, senderID string) *Notifier {
	return NewNotifierWithClients(ses.NewFromConfig(cfg), sns.NewFromConfig(cfg), fromEmail, senderID)
}

// NewNotifierWithClients is used by tests to inject fakes.
func NewNotifierWithClients(sesClient SESService, snsClient SNSService, fromEmail, senderID string) *Notifier {
	return &Notifier{
		ses:       sesClient,
		sns:       snsClient,
		fromEmail: fromEmail,
		senderID:  senderID,
	}
}
