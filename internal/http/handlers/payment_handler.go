package handlers

import (
	"net/url"

	applog "modaville/internal/log"
	"modaville/internal/payment"
	"modaville/internal/services"
	"modaville/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	Gateway *payment.Client
	Orders  *services.OrderService
}

type paymentURLReq struct {
	OrderCode string `json:"orderCode"`
	OrderInfo string `json:"orderInfo"`
	BankCode  string `json:"bankCode"`
	Locale    string `json:"locale"`
}

// POST /create_payment_url
func (h *PaymentHandler) CreatePaymentURL(c *fiber.Ctx) error {
	var req paymentURLReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	code, ok := validate.Code(req.OrderCode)
	if !ok {
		return badRequest(c, "invalid order code")
	}
	o, _, err := h.Orders.Get(code)
	if err != nil {
		return fail(c, err)
	}
	info := req.OrderInfo
	if info == "" {
		info = "Thanh toan don hang " + o.Code
	}
	redirect, err := h.Gateway.BuildPaymentURL(payment.PayRequest{
		OrderCode: o.Code,
		Amount:    o.Total,
		OrderInfo: info,
		ClientIP:  c.IP(),
		BankCode:  req.BankCode,
		Locale:    req.Locale,
	})
	if err != nil {
		applog.Error(c, "payment.url.fail", err, map[string]any{"order": o.Code})
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"paymentUrl": redirect})
}

func callbackParams(c *fiber.Ctx) url.Values {
	params := url.Values{}
	c.Context().QueryArgs().VisitAll(func(k, v []byte) {
		params.Add(string(k), string(v))
	})
	return params
}

// GET /vnpay_ipn — gateway-to-server confirmation. The gateway expects
// its response codes in the body, never HTTP errors.
func (h *PaymentHandler) IPN(c *fiber.Ctx) error {
	params := callbackParams(c)
	if !h.Gateway.VerifyCallback(params) {
		applog.Security(c, "payment.ipn.badsig", nil)
		return c.JSON(fiber.Map{"RspCode": payment.RespBadSignature, "Message": "Invalid signature"})
	}
	code := params.Get("vnp_TxnRef")
	if _, _, err := h.Orders.Get(code); err != nil {
		return c.JSON(fiber.Map{"RspCode": payment.RespOrderNotFound, "Message": "Order not found"})
	}
	if params.Get("vnp_ResponseCode") == "00" {
		if err := h.Orders.MarkPaid(code); err != nil {
			applog.Error(c, "payment.ipn.markpaid", err, map[string]any{"order": code})
			return c.JSON(fiber.Map{"RspCode": payment.RespError, "Message": "Update failed"})
		}
	}
	applog.Info(c, "payment.ipn", map[string]any{"order": code, "rsp": params.Get("vnp_ResponseCode")})
	return c.JSON(fiber.Map{"RspCode": payment.RespOK, "Message": "Confirm Success"})
}

// GET /vnpay_return — browser redirect back from the gateway
func (h *PaymentHandler) Return(c *fiber.Ctx) error {
	params := callbackParams(c)
	if !h.Gateway.VerifyCallback(params) {
		applog.Security(c, "payment.return.badsig", nil)
		return c.JSON(fiber.Map{"code": payment.RespBadSignature})
	}
	return c.JSON(fiber.Map{
		"code":      params.Get("vnp_ResponseCode"),
		"orderCode": params.Get("vnp_TxnRef"),
	})
}
