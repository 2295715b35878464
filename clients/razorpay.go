package clients

import (
	"github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"
)

// RazorpayClientWrapper provides an interface for Razorpay operations.
// This interface allows for easier testing by mocking Razorpay interactions.
type RazorpayClientWrapper interface {
	CreateOrder(data map[string]interface{}) (map[string]interface{}, error)
	VerifyWebhookSignature(signature, body, webhookSecret string) bool
}

// RazorpayClient implements RazorpayClientWrapper using the actual Razorpay SDK.
type RazorpayClient struct {
	Client *razorpay.Client
}

// NewRazorpayClient creates and returns a new instance of RazorpayClient.
func NewRazorpayClient(keyID, keySecret string) *RazorpayClient {
	return &RazorpayClient{
		Client: razorpay.NewClient(keyID, keySecret),
	}
}

// CreateOrder creates a new order in Razorpay. The nil second argument is for
// optional headers, which basic order creation does not need.
func (r *RazorpayClient) CreateOrder(data map[string]interface{}) (map[string]interface{}, error) {
	return r.Client.Order.Create(data, nil)
}

// VerifyWebhookSignature verifies the authenticity of a Razorpay webhook
// signature against the webhook secret.
func (r *RazorpayClient) VerifyWebhookSignature(signature, body, webhookSecret string) bool {
	return utils.VerifyWebhookSignature(body, signature, webhookSecret)
}
