package llm

import "fmt"

// extractionPrompt instructs the model to classify and extract transaction
// fields from one SMS body. The category list is the closed suggestion
// vocabulary; resolution against the user's actual categories happens later.
func extractionPrompt(messageText string) string {
	return fmt.Sprintf(`You are an expert at parsing bank transaction SMS messages from Indian banks. Analyze the following SMS and extract transaction details.

SMS Message: %q

Extract the following information and respond ONLY with valid JSON (no markdown, no explanation):
{
  "isTransaction": true/false,
  "amount": number (just the number, no currency symbol),
  "merchant": "merchant or payee name",
  "transactionType": "DEBIT" or "CREDIT",
  "category": "one of: Food, Transport, Shopping, Bills, Entertainment, Healthcare, Travel, Others",
  "date": "transaction date as YYYY-MM-DD if mentioned in the SMS, otherwise empty string"
}

Category Guidelines:
- Food: Restaurants, cafes, food delivery (Swiggy, Zomato, McDonald's, KFC, Dominos, etc.)
- Transport: Uber, Ola, fuel stations, parking, metro, bus, auto
- Shopping: Amazon, Flipkart, retail stores, clothing, electronics, online shopping
- Bills: Electricity, water, internet, mobile recharge, DTH, gas cylinder
- Entertainment: Netflix, Prime Video, Hotstar, movie tickets, gaming, music
- Healthcare: Hospitals, pharmacies, medical stores, doctor fees, health insurance
- Travel: Hotels, flights, train tickets, travel bookings, vacation expenses
- Others: ATM withdrawals, bank charges, or anything that doesn't fit above categories

Merchant Name Rules:
- Extract the actual business name (e.g., "Swiggy", "Amazon", "Uber")
- Remove generic terms like "at", "from", "to"
- Don't include account numbers or transaction IDs
- Keep it short and recognizable

Transaction Type Rules:
- DEBIT: Money going out (debited, spent, paid, withdrawn, used for)
- CREDIT: Money coming in (credited, received, deposited, refund, cashback)

Important:
- If this is NOT a transaction SMS (OTP, promotional, alerts), set isTransaction to false
- Return ONLY valid JSON, no markdown formatting, no code blocks
- Amount should be a number without currency symbols`, messageText)
}
