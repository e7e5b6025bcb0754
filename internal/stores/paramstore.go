package stores

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// DefaultParamPrefix matches where the LocalStack provisioning scripts put the
// routing parameters.
const DefaultParamPrefix = "/localstack/reviews/"

// ConfigResolver resolves a symbolic routing name (e.g. "preprocessed") to its
// current target bucket or table. Lookups happen per invocation so routing can
// be changed without redeploying a stage; an unresolved name fails the
// invocation.
type ConfigResolver interface {
	Resolve(ctx context.Context, name string) (string, error)
}

type SSMResolver struct {
	client *ssm.Client
	prefix string
}

func NewSSMResolver(client *ssm.Client) *SSMResolver {
	prefix := os.Getenv("PARAM_PREFIX")
	if prefix == "" {
		prefix = DefaultParamPrefix
	}
	return &SSMResolver{client: client, prefix: prefix}
}

func (r *SSMResolver) Resolve(ctx context.Context, name string) (string, error) {
	out, err := r.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name: aws.String(r.prefix + name),
	})
	if err != nil {
		return "", fmt.Errorf("[ConfigResolver] failed to resolve %q: %w", name, err)
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("[ConfigResolver] parameter %q has no value", name)
	}
	return *out.Parameter.Value, nil
}

// StaticResolver resolves from a fixed map, for tests and local runs.
type StaticResolver map[string]string

func (r StaticResolver) Resolve(_ context.Context, name string) (string, error) {
	v, ok := r[name]
	if !ok {
		return "", fmt.Errorf("[ConfigResolver] unknown name %q", name)
	}
	return v, nil
}
