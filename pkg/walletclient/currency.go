package walletclient

import (
	"math"
	"strconv"
)

// FormatINR renders an amount in rupees with zero decimal places and
// Indian digit grouping: the last three digits form one group, the rest
// pair off. 1234567 becomes "₹12,34,567".
func FormatINR(amount float64) string {
	negative := amount < 0
	n := int64(math.Round(math.Abs(amount)))

	digits := strconv.FormatInt(n, 10)
	grouped := groupIndian(digits)

	if negative {
		return "-₹" + grouped
	}
	return "₹" + grouped
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head := digits[:len(digits)-3]
	out := digits[len(digits)-3:]
	for len(head) > 2 {
		out = head[len(head)-2:] + "," + out
		head = head[:len(head)-2]
	}
	return head + "," + out
}
