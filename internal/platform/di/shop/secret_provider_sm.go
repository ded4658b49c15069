// internal/platform/di/shop/secret_provider_sm.go
package shop

import (
	"context"
	"errors"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

var errSecretProviderNotConfigured = errors.New("di.shop: sendgridKeyProviderSM not configured")

// sendgridKeyProviderSM resolves the SendGrid API key from Secret Manager
// when SENDGRID_API_KEY is not set in the environment.
// It is used by wiring_policy.go (buildOrderMailer) and must remain in
// package shop.
type sendgridKeyProviderSM struct {
	sm         *secretmanager.Client
	projectID  string
	secretName string
	version    string
}

func (p *sendgridKeyProviderSM) APIKey(ctx context.Context) (string, error) {
	if p == nil || p.sm == nil {
		return "", errSecretProviderNotConfigured
	}
	prj := strings.TrimSpace(p.projectID)
	if prj == "" {
		return "", errors.New("sendgridKeyProviderSM: projectID is empty")
	}
	secretID := strings.TrimSpace(p.secretName)
	if secretID == "" {
		return "", errors.New("sendgridKeyProviderSM: secretName is empty")
	}
	ver := strings.TrimSpace(p.version)
	if ver == "" {
		ver = "latest"
	}

	name := "projects/" + prj + "/secrets/" + secretID + "/versions/" + ver
	resp, err := p.sm.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return "", errors.New("sendgridKeyProviderSM: AccessSecretVersion failed (" + name + "): " + err.Error())
	}
	if resp == nil || resp.Payload == nil {
		return "", errors.New("sendgridKeyProviderSM: empty payload (" + name + ")")
	}

	return strings.TrimSpace(string(resp.Payload.Data)), nil
}
