package wallet

import "time"

// Default configuration values
const (
	DefaultCurrency = "INR"
	DefaultTimeout  = 30 * time.Second
)

// Operation names used in metrics and logs
const (
	opGetDetails    = "get_details"
	opHistory       = "transaction_history"
	opCreateOrder   = "create_deposit_order"
	opVerifyDeposit = "verify_deposit"
	opWithdraw      = "withdraw"
	opCheckBalance  = "check_balance"
	opChargeFee     = "charge_tournament_fee"
	opCreditPrize   = "credit_prize"
	opGrantBonus    = "grant_bonus"
	opSettlePayout  = "settle_withdrawal"
	opRefundPayout  = "refund_withdrawal"
)
