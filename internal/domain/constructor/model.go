package constructor

// Constructor is reference data for one F1 team entering two cars.
type Constructor struct {
	ID   string
	Name string
}
