package wpml

// DroneProfile maps a product name onto the enum pair the vendor format
// wants in wpml:droneInfo. The table is fixed; an unrecognized (or
// empty) name falls back to the first entry.
type DroneProfile struct {
	Key          string
	EnumValue    int
	SubEnumValue int
}

var DroneTypes = []DroneProfile{
	{Key: "dji_fly",           EnumValue: 68, SubEnumValue: 0},
	{Key: "mavic3_enterprise", EnumValue: 77, SubEnumValue: 0},
	{Key: "matrice_30",        EnumValue: 67, SubEnumValue: 0},
}

func DroneByKey(key string) DroneProfile {
	for _,d := range DroneTypes {
		if d.Key == key { return d }
	}
	return DroneTypes[0]
}
