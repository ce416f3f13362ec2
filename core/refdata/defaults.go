package refdata

import (
	"census-report/core/region"
	"census-report/core/types"
)

// Built-in Illinois reference data, used when no reference file is
// configured. County codes are the state FIPS county codes.
var defaultCounties = map[string]int{
	"Adams": 1, "Alexander": 3, "Bond": 5, "Boone": 7, "Brown": 9,
	"Bureau": 11, "Calhoun": 13, "Carroll": 15, "Cass": 17, "Champaign": 19,
	"Christian": 21, "Clark": 23, "Clay": 25, "Clinton": 27, "Coles": 29,
	"Cook": 31, "Crawford": 33, "Cumberland": 35, "DeKalb": 37, "DeWitt": 39,
	"Douglas": 41, "DuPage": 43, "Edgar": 45, "Edwards": 47, "Effingham": 49,
	"Fayette": 51, "Ford": 53, "Franklin": 55, "Fulton": 57, "Gallatin": 59,
	"Greene": 61, "Grundy": 63, "Hamilton": 65, "Hancock": 67, "Hardin": 69,
	"Henderson": 71, "Henry": 73, "Iroquois": 75, "Jackson": 77, "Jasper": 79,
	"Jefferson": 81, "Jersey": 83, "Jo Daviess": 85, "Johnson": 87, "Kane": 89,
	"Kankakee": 91, "Kendall": 93, "Knox": 95, "Lake": 97, "LaSalle": 99,
	"Lawrence": 101, "Lee": 103, "Livingston": 105, "Logan": 107, "Macon": 115,
	"Macoupin": 117, "Madison": 119, "Marion": 121, "Marshall": 123, "Mason": 125,
	"Massac": 127, "McDonough": 109, "McHenry": 111, "McLean": 113, "Menard": 129,
	"Mercer": 131, "Monroe": 133, "Montgomery": 135, "Morgan": 137, "Moultrie": 139,
	"Ogle": 141, "Peoria": 143, "Perry": 145, "Piatt": 147, "Pike": 149,
	"Pope": 151, "Pulaski": 153, "Putnam": 155, "Randolph": 157, "Richland": 159,
	"Rock Island": 161, "Saline": 165, "Sangamon": 167, "Schuyler": 169, "Scott": 171,
	"Shelby": 173, "St. Clair": 163, "Stark": 175, "Stephenson": 177, "Tazewell": 179,
	"Union": 181, "Vermilion": 183, "Wabash": 185, "Warren": 187, "Washington": 189,
	"Wayne": 191, "White": 193, "Whiteside": 195, "Will": 197, "Williamson": 199,
	"Winnebago": 201, "Woodford": 203,
}

// The four region tiers in precedence order. Cook wins over the collar
// counties, which win over the urban set, which wins over the rural set.
var (
	cookCounties   = []int{31}
	collarCounties = []int{43, 89, 97, 111, 197}
	urbanCounties  = []int{19, 91, 113, 115, 119, 143, 161, 163, 167, 179, 201}
	ruralCounties  = []int{
		1, 3, 5, 7, 9, 11, 13, 15, 17, 21, 23, 25, 27, 29, 33, 35, 37, 39,
		41, 45, 47, 49, 51, 53, 55, 57, 59, 61, 63, 65, 67, 69, 71, 73, 75,
		77, 79, 81, 83, 85, 87, 93, 95, 99, 101, 103, 105, 107, 109, 117,
		121, 123, 125, 127, 129, 131, 133, 135, 137, 139, 141, 145, 147,
		149, 151, 153, 155, 157, 159, 165, 169, 171, 173, 175, 177, 181,
		183, 185, 187, 189, 191, 193, 195, 199, 203,
	}
)

var eighteenBrackets = []string{
	"0-4", "5-9", "10-14", "15-19", "20-24", "25-29", "30-34", "35-39",
	"40-44", "45-49", "50-54", "55-59", "60-64", "65-69", "70-74", "75-79",
	"80-84", "80+",
}

// Default returns the built-in Illinois reference data.
func Default() *Reference {
	groups := map[string]*BracketDefinition{
		"agegroup13": {
			Name: "agegroup13",
			Explicit: []string{
				"Age=1", "Age=2", "Age=3", "Age=4", "Age=5", "Age=6",
				"Age=7", "Age=8", "Age=9", "Age=10", "Age=11", "Age=12",
				"Age=13", "Age=14", "Age=15", "Age=16", "Age=17", "Age=18",
			},
			Implicit: eighteenBrackets,
		},
		"agegroup14": {
			Name: "agegroup14",
			Explicit: []string{
				"Age=1", "Age=2", "Age=3", "Age=4",
				"Age>=5 AND Age<=13", "Age>=14 AND Age<=18",
			},
			Implicit: []string{"0-4", "5-9", "10-14", "15-19", "20-64", "65+"},
		},
		"agegroup15": {
			Name: "agegroup15",
			Explicit: []string{
				"Age>=1 AND Age<=4", "Age>=5 AND Age<=18",
			},
			Implicit: []string{"0-19", "20+"},
		},
	}

	return &Reference{
		Counties:  types.NewCountyMap(defaultCounties),
		AgeGroups: groups,
		Aliases: map[string]string{
			"18-Bracket": "agegroup13",
			"6-Bracket":  "agegroup14",
			"2-Bracket":  "agegroup15",
		},
		Regions: region.NewSets(
			region.NewTier("Cook County", cookCounties),
			region.NewTier("Collar Counties", collarCounties),
			region.NewTier("Urban Counties", urbanCounties),
			region.NewTier("Rural Counties", ruralCounties),
		),
	}
}
