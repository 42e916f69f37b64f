package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	extserrors "github.com/systmms/extsecrets/internal/errors"
	"github.com/systmms/extsecrets/internal/logging"
	"github.com/systmms/extsecrets/internal/metrics"
	"github.com/systmms/extsecrets/internal/secure"
	"github.com/systmms/extsecrets/pkg/provider"
)

// maxBatchSecretCount is the largest identifier list BatchGetSecretValue
// accepts in one call. Stores with a different bulk limit only need this
// constant changed.
const maxBatchSecretCount = 20

// Supported authentication methods for the AWS Secrets Manager store.
const (
	authMethodIAMUser    = "iamUser"
	authMethodIAMRole    = "iamRole"
	authMethodAutoDetect = "autoDetect"
)

// SecretsManagerAPI is the narrow slice of the AWS Secrets Manager client
// this provider needs. It allows mock injection in tests.
type SecretsManagerAPI interface {
	ListSecrets(ctx context.Context, params *secretsmanager.ListSecretsInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.ListSecretsOutput, error)
	BatchGetSecretValue(ctx context.Context, params *secretsmanager.BatchGetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.BatchGetSecretValueOutput, error)
}

// awsSettings holds the validated store settings. Immutable after Init; the
// secret access key lives in a memguard enclave and is only opened while
// the credentials provider is being built.
type awsSettings struct {
	region          string
	authMethod      string
	accessKeyID     string
	secretAccessKey *secure.Buffer
	sessionToken    string
	roleArn         string
	filterJSON      string
	endpoint        string // optional custom endpoint for LocalStack or testing
}

// AWSSecretsManagerProvider mirrors an AWS Secrets Manager account/region
// into an in-memory snapshot. It implements provider.Provider.
//
// Update serializes itself; GetSecret reads only the published snapshot and
// is safe to call concurrently with an in-flight Update.
type AWSSecretsManagerProvider struct {
	name   string
	logger *logging.Logger

	mu             sync.RWMutex // guards state, lastErr, client, settings
	state          provider.ConnectionState
	lastErr        error
	client         SecretsManagerAPI
	clientInjected bool
	settings       awsSettings
	initialized    bool

	updateMu sync.Mutex // one refresh cycle in flight at a time
	cache    *SecretCache
}

// AWSOption is a functional option for configuring the provider
type AWSOption func(*AWSSecretsManagerProvider)

// WithSecretsManagerClient sets a custom Secrets Manager client (for testing)
func WithSecretsManagerClient(client SecretsManagerAPI) AWSOption {
	return func(p *AWSSecretsManagerProvider) {
		p.client = client
		p.clientInjected = true
	}
}

// NewAWSSecretsManagerProvider creates an unconfigured provider instance.
// Call Init with settings before Connect.
func NewAWSSecretsManagerProvider(name string, logger *logging.Logger, opts ...AWSOption) *AWSSecretsManagerProvider {
	if logger == nil {
		logger = logging.New(false, true)
	}

	p := &AWSSecretsManagerProvider{
		name:   name,
		logger: logger,
		state:  provider.StateUninitialized,
		cache:  NewSecretCache(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Name returns the provider name
func (p *AWSSecretsManagerProvider) Name() string {
	return p.name
}

// Init validates and stores the settings without performing network I/O.
// Which credential fields are required depends on authMethod.
func (p *AWSSecretsManagerProvider) Init(settings map[string]interface{}) error {
	str := func(key string) string {
		if v, ok := settings[key].(string); ok {
			return v
		}
		return ""
	}

	parsed := awsSettings{
		region:       str("region"),
		authMethod:   str("authMethod"),
		accessKeyID:  str("accessKeyId"),
		sessionToken: str("sessionToken"),
		roleArn:      str("roleArn"),
		filterJSON:   str("filterJson"),
		endpoint:     str("endpoint"),
	}
	if parsed.region == "" {
		parsed.region = "us-east-1"
	}
	if parsed.authMethod == "" {
		parsed.authMethod = authMethodAutoDetect
	}

	secretKey := str("secretAccessKey")

	switch parsed.authMethod {
	case authMethodIAMUser:
		if parsed.accessKeyID == "" {
			return &provider.ConfigError{Provider: p.name, Field: "accessKeyId", Message: "required for iamUser authentication"}
		}
		if secretKey == "" {
			return &provider.ConfigError{Provider: p.name, Field: "secretAccessKey", Message: "required for iamUser authentication"}
		}
	case authMethodIAMRole:
		if parsed.roleArn == "" {
			return &provider.ConfigError{Provider: p.name, Field: "roleArn", Message: "required for iamRole authentication"}
		}
	case authMethodAutoDetect:
		// SDK default credential chain; nothing to require.
	default:
		return &provider.ConfigError{Provider: p.name, Field: "authMethod", Message: fmt.Sprintf("unsupported auth method %q", parsed.authMethod)}
	}

	if secretKey != "" {
		p.logger.Protect(secretKey)
		parsed.secretAccessKey = secure.NewBufferFromString(secretKey)
	}
	if parsed.sessionToken != "" {
		p.logger.Protect(parsed.sessionToken)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.settings = parsed
	p.initialized = true
	return nil
}

// Connect builds an authenticated client and probes connectivity with a
// minimal listing call. It never returns an error: the resulting state is
// the outcome, and the triggering error is retained behind LastError.
func (p *AWSSecretsManagerProvider) Connect(ctx context.Context) provider.ConnectionState {
	p.mu.Lock()
	p.state = provider.StateConnecting
	p.lastErr = nil

	if !p.initialized {
		p.lastErr = &provider.ConfigError{Provider: p.name, Message: "Init must be called before Connect"}
		p.state = provider.StateError
		p.mu.Unlock()
		return provider.StateError
	}

	if !p.clientInjected {
		client, err := p.buildClient(ctx)
		if err != nil {
			p.lastErr = err
			p.state = provider.StateError
			p.mu.Unlock()
			p.logger.Error("%s: failed to build client: %v", p.name, err)
			return provider.StateError
		}
		p.client = client
	}
	client := p.client
	p.mu.Unlock()

	// Cheap connectivity probe; also verifies the credentials can list.
	_, err := client.ListSecrets(ctx, &secretsmanager.ListSecretsInput{
		MaxResults: aws.Int32(1),
	})

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.lastErr = p.classify(err)
		p.state = provider.StateError
		p.logger.Error("%s: connectivity probe failed: %v", p.name, err)
		return provider.StateError
	}

	p.state = provider.StateConnected
	p.logger.Debug("%s: connected to AWS Secrets Manager in %s", p.name, p.settings.region)
	return provider.StateConnected
}

// buildClient assembles an AWS config for the chosen auth method and returns
// a Secrets Manager client. Called with p.mu held.
func (p *AWSSecretsManagerProvider) buildClient(ctx context.Context) (SecretsManagerAPI, error) {
	configOpts := []func(*config.LoadOptions) error{
		config.WithRegion(p.settings.region),
	}

	if p.settings.authMethod == authMethodIAMUser {
		staticProvider, err := p.staticCredentials()
		if err != nil {
			return nil, err
		}
		configOpts = append(configOpts, config.WithCredentialsProvider(staticProvider))
	}

	cfg, err := config.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if p.settings.authMethod == authMethodIAMRole {
		stsClient := sts.NewFromConfig(cfg)
		cfg.Credentials = aws.NewCredentialsCache(
			stscreds.NewAssumeRoleProvider(stsClient, p.settings.roleArn),
		)
	}

	var clientOpts []func(*secretsmanager.Options)
	if p.settings.endpoint != "" {
		endpoint := p.settings.endpoint
		clientOpts = append(clientOpts, func(o *secretsmanager.Options) {
			o.BaseEndpoint = &endpoint
		})
	}
	return secretsmanager.NewFromConfig(cfg, clientOpts...), nil
}

// staticCredentials opens the protected secret key just long enough to build
// a static credentials provider.
func (p *AWSSecretsManagerProvider) staticCredentials() (aws.CredentialsProvider, error) {
	if p.settings.secretAccessKey == nil {
		return nil, &provider.ConfigError{Provider: p.name, Field: "secretAccessKey", Message: "not available"}
	}

	locked, err := p.settings.secretAccessKey.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open credential enclave: %w", err)
	}
	defer locked.Destroy()

	return credentials.NewStaticCredentialsProvider(
		p.settings.accessKeyID,
		locked.String(),
		p.settings.sessionToken,
	), nil
}

// Update refreshes the snapshot: list every visible identifier, fetch all
// values in bounded batches, then swap the cache in one assignment. Any
// failure aborts the cycle and leaves the previous snapshot published.
func (p *AWSSecretsManagerProvider) Update(ctx context.Context) error {
	p.updateMu.Lock()
	defer p.updateMu.Unlock()

	p.mu.RLock()
	state := p.state
	client := p.client
	filterJSON := p.settings.filterJSON
	p.mu.RUnlock()

	if state != provider.StateConnected {
		return &provider.NotConnectedError{Provider: p.name, State: state}
	}

	start := time.Now()
	err := p.refresh(ctx, client, filterJSON)
	metrics.RecordUpdate(p.name, err, time.Since(start), p.cache.Len())
	return err
}

func (p *AWSSecretsManagerProvider) refresh(ctx context.Context, client SecretsManagerAPI, filterJSON string) error {
	filters := parseSecretsFilters(filterJSON)
	if filterJSON != "" && filters == nil {
		p.logger.Warn("%s: ignoring malformed listing filter, listing all visible secrets", p.name)
	}

	names, err := p.listSecretNames(ctx, client, filters)
	if err != nil {
		p.noteConnectivityFailure(err)
		return extserrors.StoreError(p.name, "list", err)
	}

	values, err := p.fetchSecretValues(ctx, client, names)
	if err != nil {
		p.noteConnectivityFailure(err)
		return extserrors.StoreError(p.name, "fetch", err)
	}

	p.cache.Replace(values)
	p.logger.Debug("%s: refreshed %d secrets", p.name, len(values))
	return nil
}

// listSecretNames pages through ListSecrets, threading each continuation
// token exactly as returned. The filter is passed unchanged on every page.
func (p *AWSSecretsManagerProvider) listSecretNames(ctx context.Context, client SecretsManagerAPI, filters []types.Filter) ([]string, error) {
	var names []string
	var nextToken *string

	for {
		out, err := client.ListSecrets(ctx, &secretsmanager.ListSecretsInput{
			Filters:   filters,
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("ListSecrets failed: %w", err)
		}

		for _, entry := range out.SecretList {
			if entry.Name != nil {
				names = append(names, *entry.Name)
			}
		}

		if out.NextToken == nil {
			return names, nil
		}
		nextToken = out.NextToken
	}
}

// fetchSecretValues retrieves values for names in consecutive chunks of at
// most maxBatchSecretCount, preserving order. A failure in any chunk fails
// the whole fetch; nothing is committed to the live cache here.
func (p *AWSSecretsManagerProvider) fetchSecretValues(ctx context.Context, client SecretsManagerAPI, names []string) (map[string]string, error) {
	values := make(map[string]string, len(names))

	for start := 0; start < len(names); start += maxBatchSecretCount {
		chunk := names[start:min(start+maxBatchSecretCount, len(names))]

		var nextToken *string
		for {
			out, err := client.BatchGetSecretValue(ctx, &secretsmanager.BatchGetSecretValueInput{
				SecretIdList: chunk,
				NextToken:    nextToken,
			})
			if err != nil {
				return nil, fmt.Errorf("BatchGetSecretValue failed: %w", err)
			}

			for _, entry := range out.SecretValues {
				if entry.Name == nil {
					continue
				}
				switch {
				case entry.SecretString != nil:
					values[*entry.Name] = *entry.SecretString
				case entry.SecretBinary != nil:
					values[*entry.Name] = string(entry.SecretBinary)
				}
			}

			if out.NextToken == nil {
				break
			}
			nextToken = out.NextToken
		}
	}

	return values, nil
}

// GetSecret reads from the published snapshot. It never performs I/O.
func (p *AWSSecretsManagerProvider) GetSecret(name string) (string, error) {
	value, ok := p.cache.Get(name)
	metrics.RecordLookup(p.name, ok)
	if !ok {
		return "", &provider.NotFoundError{Provider: p.name, Key: name}
	}
	return value, nil
}

// SecretNames returns the identifiers in the published snapshot, sorted.
func (p *AWSSecretsManagerProvider) SecretNames() []string {
	return p.cache.Names()
}

// State returns the current connection state.
func (p *AWSSecretsManagerProvider) State() provider.ConnectionState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// LastError returns the retained cause of the most recent failure observed
// through the state machine, or nil.
func (p *AWSSecretsManagerProvider) LastError() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastErr
}

// noteConnectivityFailure transitions to the error state when a refresh
// failure looks like an auth or connectivity problem rather than, say, a
// malformed request. Other failures leave the state untouched.
func (p *AWSSecretsManagerProvider) noteConnectivityFailure(err error) {
	if !isAuthError(err) && !isConnectivityError(err) {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastErr = p.classify(err)
	p.state = provider.StateError
}

// classify wraps auth-shaped failures in the shared AuthError type so hosts
// can dispatch on it; everything else is retained as-is.
func (p *AWSSecretsManagerProvider) classify(err error) error {
	if isAuthError(err) {
		return &provider.AuthError{Provider: p.name, Message: err.Error()}
	}
	return err
}

func isAuthError(err error) bool {
	errStr := err.Error()
	return strings.Contains(errStr, "AccessDenied") ||
		strings.Contains(errStr, "UnauthorizedOperation") ||
		strings.Contains(errStr, "UnrecognizedClientException") ||
		strings.Contains(errStr, "InvalidClientTokenId") ||
		strings.Contains(errStr, "ExpiredToken") ||
		strings.Contains(errStr, "InvalidUserID") ||
		strings.Contains(errStr, "Forbidden")
}

func isConnectivityError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "connection reset")
}
