// Package payment builds signed redirect URLs for the vnpay gateway and
// verifies its signed callbacks. The wire contract is HMAC-SHA512 over
// the alphabetically-sorted, URL-encoded parameter string.
package payment

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"time"

	"modaville/internal/config"
)

// Gateway response codes returned to the processor on callbacks. The
// gateway expects these in the body, not HTTP status codes.
const (
	RespOK            = "00"
	RespOrderNotFound = "01"
	RespBadSignature  = "97"
	RespError         = "99"
)

var ErrNotConfigured = errors.New("payment gateway credentials not configured")

type Client struct {
	cfg config.Payment
	now func() time.Time
}

func New(cfg config.Payment) *Client {
	return &Client{cfg: cfg, now: time.Now}
}

type PayRequest struct {
	OrderCode string
	Amount    float64
	OrderInfo string
	ClientIP  string
	BankCode  string
	Locale    string
}

// BuildPaymentURL assembles the redirect URL. The gateway multiplies
// amounts by 100 on its side of the wire.
func (c *Client) BuildPaymentURL(req PayRequest) (string, error) {
	if c.cfg.TmnCode == "" || c.cfg.HashSecret == "" {
		return "", ErrNotConfigured
	}
	now := c.now()
	params := url.Values{}
	params.Set("vnp_Version", "2.1.0")
	params.Set("vnp_Command", "pay")
	params.Set("vnp_TmnCode", c.cfg.TmnCode)
	params.Set("vnp_Amount", fmt.Sprintf("%d", int64(req.Amount*100)))
	params.Set("vnp_CurrCode", "VND")
	params.Set("vnp_TxnRef", req.OrderCode)
	params.Set("vnp_OrderInfo", req.OrderInfo)
	params.Set("vnp_OrderType", "other")
	params.Set("vnp_ReturnUrl", c.cfg.ReturnURL)
	params.Set("vnp_IpAddr", req.ClientIP)
	params.Set("vnp_CreateDate", now.Format("20060102150405"))
	params.Set("vnp_ExpireDate", now.Add(15*time.Minute).Format("20060102150405"))
	locale := req.Locale
	if locale == "" {
		locale = "vn"
	}
	params.Set("vnp_Locale", locale)
	if req.BankCode != "" {
		params.Set("vnp_BankCode", req.BankCode)
	}

	// url.Values.Encode sorts keys alphabetically; the signature covers
	// exactly the encoded string the gateway will see.
	encoded := params.Encode()
	sig := c.sign(encoded)
	return c.cfg.GatewayURL + "?" + encoded + "&vnp_SecureHash=" + sig, nil
}

// VerifyCallback recomputes the signature over the callback params (hash
// fields excluded) and compares it against the one the gateway sent.
func (c *Client) VerifyCallback(params url.Values) bool {
	got := params.Get("vnp_SecureHash")
	if got == "" {
		return false
	}
	cp := url.Values{}
	for k, vs := range params {
		if k == "vnp_SecureHash" || k == "vnp_SecureHashType" {
			continue
		}
		for _, v := range vs {
			cp.Add(k, v)
		}
	}
	want := c.sign(cp.Encode())
	return hmac.Equal([]byte(got), []byte(want))
}

func (c *Client) sign(data string) string {
	mac := hmac.New(sha512.New, []byte(c.cfg.HashSecret))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}
