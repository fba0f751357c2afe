package extract

import "google.golang.org/genai"

// Schema returns the response schema the generation backend must follow.
// It mirrors the core itinerary types exactly: closed enums for category,
// settlement method and traffic status, nested detail substructures, and
// the required fields per level.
func Schema() *genai.Schema {
	latLng := obj(map[string]*genai.Schema{
		"lat": num(),
		"lng": num(),
	})

	details := obj(map[string]*genai.Schema{
		"japaneseName":   str(),
		"hiragana":       str(),
		"address":        str(),
		"phoneNumber":    str(),
		"openingHours":   str(),
		"holidays":       str(),
		"lastOrder":      str(),
		"reservationUrl": str(),
		"tabelogUrl":     str(),
		"websiteUrl":     str(),
		"isReserved":     boolean(),
		"mealPlan":       str(),
		"rooms": arr(obj(map[string]*genai.Schema{
			"name":        str(),
			"description": str(),
			"imageUrl":    str(),
			"link":        str(),
		})),
		"onsen": obj(map[string]*genai.Schema{
			"hasPrivateBath": boolean(),
			"hasOpenAir":     boolean(),
			"bathName":       str(),
			"hours":          str(),
			"genderSwap":     str(),
			"privateBathFee": str(),
		}),
		"hotelActivities": arr(obj(map[string]*genai.Schema{
			"name":        str(),
			"description": str(),
			"imageUrl":    str(),
		})),
		"popularDishes": arr(obj(map[string]*genai.Schema{
			"original":   str(),
			"translated": str(),
		})),
		"transportInfo": obj(map[string]*genai.Schema{
			"departureTerminal": str(),
			"arrivalTerminal":   str(),
			"flightNumber":      str(),
		}),
		"carRental": obj(map[string]*genai.Schema{
			"model":           str(),
			"company":         str(),
			"pickupLocation":  str(),
			"dropoffLocation": str(),
		}),
		"coordinates": latLng,
	})

	expense := obj(map[string]*genai.Schema{
		"amountPerPerson": num(),
		"peopleCount":     num(),
		"total":           num(),
		"currency":        str(),
		"method":          enum("CASH", "CARD"),
		"isEstimate":      boolean(),
	})

	event := obj(map[string]*genai.Schema{
		"id":                   str(),
		"time":                 str(),
		"endTime":              str(),
		"activity":             str(),
		"location":             str(),
		"notes":                str(),
		"category":             enum("TRANSPORT", "FOOD", "ACTIVITY", "STAY", "OTHER"),
		"emoji":                str(),
		"estimatedTravelTime":  str(),
		"estimatedArrivalTime": str(),
		"distance":             str(),
		"trafficStatus":        enum("normal", "moderate", "congested"),
		"details":              details,
		"expense":              expense,
	})
	event.Required = []string{"time", "activity", "category", "details", "expense", "id"}

	day := obj(map[string]*genai.Schema{
		"date":         str(),
		"dayOfWeek":    str(),
		"dayNumber":    str(),
		"dayTitle":     str(),
		"summary":      str(),
		"location":     str(),
		"imageKeyword": str(),
		"coordinates":  latLng,
		"events":       arr(event),
	})
	day.Required = []string{"date", "events", "coordinates"}

	trip := obj(map[string]*genai.Schema{
		"tripTitle":    str(),
		"year":         str(),
		"month":        str(),
		"participants": num(),
		"days":         arr(day),
	})
	trip.Required = []string{"tripTitle", "days"}

	return trip
}

func str() *genai.Schema     { return &genai.Schema{Type: genai.TypeString} }
func num() *genai.Schema     { return &genai.Schema{Type: genai.TypeNumber} }
func boolean() *genai.Schema { return &genai.Schema{Type: genai.TypeBoolean} }

func enum(values ...string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Enum: values}
}

func obj(props map[string]*genai.Schema) *genai.Schema {
	return &genai.Schema{Type: genai.TypeObject, Properties: props}
}

func arr(items *genai.Schema) *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: items}
}
