// internal/notify/aws.go

package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"loan-wizard/internal/common/config"
	"loan-wizard/internal/common/logger"
	"loan-wizard/internal/models"
)

// Interfaces for mocking the AWS clients.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// AWSNotifier emails the applicant via SES and texts them via SNS when the
// application is submitted. Step-level events are not delivered externally.
type AWSNotifier struct {
	cfg       config.NotificationConfig
	log       logger.Logger
	sesClient SESService
	snsClient SNSService
}

func NewAWSNotifier(ctx context.Context, cfg config.NotificationConfig, log logger.Logger) (*AWSNotifier, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return &AWSNotifier{
		cfg:       cfg,
		log:       log,
		sesClient: ses.NewFromConfig(awsCfg),
		snsClient: sns.NewFromConfig(awsCfg),
	}, nil
}

// NewAWSNotifierWithClients injects prebuilt clients, for tests.
func NewAWSNotifierWithClients(cfg config.NotificationConfig, log logger.Logger, sesClient SESService, snsClient SNSService) *AWSNotifier {
	return &AWSNotifier{cfg: cfg, log: log, sesClient: sesClient, snsClient: snsClient}
}

func (n *AWSNotifier) StepSaved(ctx context.Context, step string, draft models.Draft) {}

func (n *AWSNotifier) StepRejected(ctx context.Context, step string, reason error) {}

func (n *AWSNotifier) Submitted(ctx context.Context, applicationID string, draft models.Draft) {
	body := fmt.Sprintf("%s Your loan application %s has been received.", SubmittedMessage, applicationID)

	if n.cfg.Email.Enabled && draft.Email != nil {
		if err := n.sendEmail(ctx, *draft.Email, "Loan application received", body); err != nil {
			n.log.Error("email send failed", map[string]interface{}{
				"error":         err,
				"applicationId": applicationID,
			})
		}
	}

	if n.cfg.SMS.Enabled && draft.Phone != nil {
		if err := n.sendSMS(ctx, *draft.Phone, body); err != nil {
			n.log.Error("SMS send failed", map[string]interface{}{
				"error":         err,
				"applicationId": applicationID,
			})
		}
	}
}

func (n *AWSNotifier) sendEmail(ctx context.Context, to, subject, body string) error {
	_, err := n.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(n.cfg.Email.FromEmail),
	})
	return err
}

func (n *AWSNotifier) sendSMS(ctx context.Context, to, message string) error {
	_, err := n.snsClient.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(message),
	})
	return err
}
