package extract

import (
	"fmt"
	"strings"
	"time"
)

// Prompt builds the instruction handed to the generation backend. The
// calendar section is derived entirely from the anchor date so the same
// pipeline works for any trip, not one fixed departure.
func Prompt(anchor time.Time, days, participants int, csvText string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "You are an expert travel assistant. Analyze the following CSV travel itinerary for a group trip of %d people.\n\n", participants)
	sb.WriteString("Your task is to convert this raw data into a rich, structured JSON itinerary.\n\n")
	sb.WriteString("CRITICAL INSTRUCTIONS:\n")

	fmt.Fprintf(&sb, "1. **Dates & Calendar**:\n   - The trip starts on **%s**.\n", anchor.Format("January 2, 2006"))
	for i := 0; i < days; i++ {
		d := anchor.AddDate(0, 0, i)
		line := fmt.Sprintf("   - **Day %d**: %d (%s)", i+1, d.Day(), weekdayAbbr(d))
		if i > 0 && d.Day() == 1 {
			line += fmt.Sprintf(" [%s]", d.Format("January"))
		}
		sb.WriteString(line + "\n")
	}
	sb.WriteString("   - 'dayNumber': Just the digit (e.g., \"28\", \"1\").\n")
	sb.WriteString("   - 'dayOfWeek': 3-letter UPPERCASE English Abbreviation (e.g., TUE, WED).\n")
	fmt.Fprintf(&sb, "   - 'month': %q (Primary month).\n", MonthLabel(anchor))
	fmt.Fprintf(&sb, "   - 'year': %q.\n", anchor.Format("2006"))

	sb.WriteString(`
2. **Activity Titles**:
   - 'activity' field MUST be the concise official name of the location or shop.
   - Do NOT use sentences. Move descriptions to 'notes'.

3. **Japanese Data**:
   - 'japaneseName' (Kanji) and 'hiragana' (Reading) are MANDATORY for all Japanese locations.

4. **Universal Business Info (Restaurants & Spots)**:
   - MANDATORY: Extract or Estimate 'openingHours', 'holidays' (regular closing days) and 'lastOrder' (for restaurants).
   - 'phoneNumber' is Crucial for Car Navigation.

5. **Navigation**:
   - 'estimatedArrivalTime': Calculate the likely arrival time at this location based on the previous event's end time plus travel time (Format HH:MM).
   - 'trafficStatus': Estimate realistic traffic based on location/time. Use 'normal', 'moderate', or 'congested'.

6. **Hotels & Onsen**:
   - 'rooms': Extract distinct room types.
   - 'mealPlan': Extract specific meal info (e.g., "素泊", "一泊二食").
   - 'onsen': Look for "貸切", "露天".

7. **Restaurants**:
   - 'tabelogUrl': If not provided, generate a search URL.

8. **Expenses**:
   - 'amountPerPerson' is the per-person price; leave 0 when the rows carry no price.
   - 'method' is CASH unless the rows clearly say a card is used.

`)

	sb.WriteString("CSV Data:\n```csv\n")
	sb.WriteString(csvText)
	sb.WriteString("\n```\n")
	return sb.String()
}

// SystemInstruction is the fixed system prompt for the generation backend.
const SystemInstruction = "You are a travel expert. Output JSON only. Use Traditional Chinese for descriptions."

// MonthLabel renders the anchor month the way the itinerary displays it,
// e.g. "10月".
func MonthLabel(anchor time.Time) string {
	return fmt.Sprintf("%d月", int(anchor.Month()))
}

func weekdayAbbr(t time.Time) string {
	return strings.ToUpper(t.Format("Mon"))
}
