package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
)

type fakeDoer struct {
	lastReq *http.Request
	status  int
	body    string
	err     error
}

func (f *fakeDoer) Do(req *http.Request) (*http.Response, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &http.Response{
		StatusCode: f.status,
		Body:       io.NopCloser(strings.NewReader(f.body)),
	}, nil
}

func TestCreateOrder(t *testing.T) {
	doer := &fakeDoer{
		status: http.StatusOK,
		body:   `{"id":"order_abc","amount":50000,"currency":"INR","status":"created"}`,
	}
	c := NewClient("https://gateway.test", "key_id", "key_secret", doer)

	order, err := c.CreateOrder(context.Background(), 50000, "INR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.ID != "order_abc" {
		t.Errorf("order id = %q, want order_abc", order.ID)
	}
	if order.Amount != 50000 {
		t.Errorf("amount = %d, want 50000", order.Amount)
	}

	if doer.lastReq.URL.String() != "https://gateway.test/v1/orders" {
		t.Errorf("request url = %q", doer.lastReq.URL.String())
	}
	user, pass, ok := doer.lastReq.BasicAuth()
	if !ok || user != "key_id" || pass != "key_secret" {
		t.Errorf("basic auth = %q/%q, ok=%v", user, pass, ok)
	}

	var sent map[string]any
	data, _ := io.ReadAll(doer.lastReq.Body)
	if err := json.Unmarshal(data, &sent); err != nil {
		t.Fatalf("request body not json: %v", err)
	}
	receipt, _ := sent["receipt"].(string)
	if !strings.HasPrefix(receipt, "order_") {
		t.Errorf("receipt = %q, want order_ prefix", receipt)
	}
}

func TestCreateOrderRejectsBadAmount(t *testing.T) {
	c := NewClient("https://gateway.test", "k", "s", &fakeDoer{})
	if _, err := c.CreateOrder(context.Background(), 0, "INR"); err == nil {
		t.Fatal("expected error for zero amount")
	}
}

func TestCreateOrderGatewayError(t *testing.T) {
	doer := &fakeDoer{status: http.StatusBadGateway, body: "upstream down"}
	c := NewClient("https://gateway.test", "k", "s", doer)
	if _, err := c.CreateOrder(context.Background(), 100, "INR"); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}

func TestVerifySignature(t *testing.T) {
	const secret = "key_secret"
	c := NewClient("https://gateway.test", "key_id", secret, &fakeDoer{})

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte("order_abc|pay_xyz"))
	good := hex.EncodeToString(mac.Sum(nil))

	if !c.VerifySignature("order_abc", "pay_xyz", good) {
		t.Error("valid signature rejected")
	}
	if c.VerifySignature("order_abc", "pay_xyz", "deadbeef") {
		t.Error("forged signature accepted")
	}
	if c.VerifySignature("order_other", "pay_xyz", good) {
		t.Error("signature for different order accepted")
	}
}
