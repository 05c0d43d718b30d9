package animals

func num(v float64) *Number {
	n := Number(v)
	return &n
}

// SampleRecords son los registros de demostración que se muestran cuando el
// endpoint del listado todavía no está disponible.
func SampleRecords(farmID string) []Record {
	farm := ID(farmID)
	return []Record{
		{
			ID:            "demo-1",
			FarmID:        farm,
			Name:          "Lucero",
			VisualCode:    "BOV-001",
			CategoryName:  CategoryBovino,
			BreedName:     "Brahman",
			Sex:           SexFemale,
			BirthDate:     "2021-03-14T00:00:00Z",
			CurrentWeight: num(452),
			PaddockName:   "Potrero Norte",
			CurrentStatus: HealthHealthy,
		},
		{
			ID:            "demo-2",
			FarmID:        farm,
			Name:          "Tornado",
			VisualCode:    "BOV-002",
			CategoryName:  CategoryBovino,
			BreedName:     "Angus",
			Sex:           SexMale,
			BirthDate:     "2020-08-02T00:00:00Z",
			CurrentWeight: num(610),
			PaddockName:   "Potrero Sur",
			CurrentStatus: HealthObservation,
		},
		{
			ID:            "demo-3",
			FarmID:        farm,
			Name:          "Nube",
			VisualCode:    "OVI-001",
			CategoryName:  CategoryOvino,
			BreedName:     "Merino",
			Sex:           SexFemale,
			BirthDate:     "2022-11-20T00:00:00Z",
			CurrentWeight: num(58.5),
			PaddockName:   "Corral 3",
			CurrentStatus: HealthHealthy,
		},
	}
}
