package dto

// DriverResponse carries the roster entry plus the stored default rates
// the assignment screen prefills charges from.
type DriverResponse struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Phone             string  `json:"phone"`
	DefaultChargeType *string `json:"default_charge_type"`
	PerMileRate       *string `json:"per_mile_rate"`
	PerHourRate       *string `json:"per_hour_rate"`
	DefaultFixedPay   *string `json:"default_fixed_pay"`
	TakeHomePercent   *string `json:"take_home_percent"`
}

type ListDriversResponse struct {
	Drivers []DriverResponse `json:"drivers"`
}
