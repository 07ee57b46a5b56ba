package driver

// Driver is reference data for one F1 driver.
type Driver struct {
	ID            string
	Name          string
	Code          string
	Number        int
	ConstructorID string
}
