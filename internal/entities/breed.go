package entities

// Breed is a catalog entry as served by the remote catalog and handed to
// presentation code. All fields are comparable, so two breeds are equal
// exactly when every field matches.
type Breed struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	CFAURL           string `json:"cfa_url"`
	VetstreetURL     string `json:"vetstreet_url"`
	VCAHospitalsURL  string `json:"vcahospitals_url"`
	Temperament      string `json:"temperament"`
	Origin           string `json:"origin"`
	CountryCodes     string `json:"country_codes"`
	CountryCode      string `json:"country_code"`
	Description      string `json:"description"`
	LifeSpan         string `json:"life_span"`
	AltNames         string `json:"alt_names"`
	WikipediaURL     string `json:"wikipedia_url"`
	ReferenceImageID string `json:"reference_image_id"`
	Weight           Weight `json:"weight"`
	Image            Image  `json:"image"`

	Indoor           int64 `json:"indoor"`
	Lap              int64 `json:"lap"`
	Adaptability     int64 `json:"adaptability"`
	AffectionLevel   int64 `json:"affection_level"`
	ChildFriendly    int64 `json:"child_friendly"`
	DogFriendly      int64 `json:"dog_friendly"`
	EnergyLevel      int64 `json:"energy_level"`
	Grooming         int64 `json:"grooming"`
	HealthIssues     int64 `json:"health_issues"`
	Intelligence     int64 `json:"intelligence"`
	SheddingLevel    int64 `json:"shedding_level"`
	SocialNeeds      int64 `json:"social_needs"`
	StrangerFriendly int64 `json:"stranger_friendly"`
	Vocalisation     int64 `json:"vocalisation"`
	Experimental     int64 `json:"experimental"`
	Hairless         int64 `json:"hairless"`
	Natural          int64 `json:"natural"`
	Rare             int64 `json:"rare"`
	Rex              int64 `json:"rex"`
	SuppressedTail   int64 `json:"suppressed_tail"`
	ShortLegs        int64 `json:"short_legs"`
	Hypoallergenic   int64 `json:"hypoallergenic"`

	// CreatedAt is set by the client when the record is first decoded
	// (epoch milliseconds). The catalog never sends it.
	CreatedAt int64 `json:"-"`
}

type Weight struct {
	Imperial string `json:"imperial"`
	Metric   string `json:"metric"`
}

type Image struct {
	ID     string `json:"id"`
	Width  int64  `json:"width"`
	Height int64  `json:"height"`
	URL    string `json:"url"`
}

// Equal reports whether every field of b and other matches.
func (b Breed) Equal(other Breed) bool {
	return b == other
}

// ImageURL returns the URL of the breed's reference image, if any.
func (b Breed) ImageURL() string {
	return b.Image.URL
}

// BreedEntity is the persisted row of the breeds table.
type BreedEntity struct {
	ID               string `gorm:"primaryKey;size:64"`
	Name             string `gorm:"index;size:256"`
	CFAURL           string `gorm:"column:cfa_url;size:2048"`
	VetstreetURL     string `gorm:"size:2048"`
	VCAHospitalsURL  string `gorm:"column:vcahospitals_url;size:2048"`
	Temperament      string `gorm:"type:text"`
	Origin           string `gorm:"size:256"`
	CountryCodes     string `gorm:"size:64"`
	CountryCode      string `gorm:"size:16"`
	Description      string `gorm:"type:text"`
	LifeSpan         string `gorm:"size:64"`
	AltNames         string `gorm:"type:text"`
	WikipediaURL     string `gorm:"size:2048"`
	ReferenceImageID string `gorm:"size:64"`
	WeightImperial   string `gorm:"size:64"`
	WeightMetric     string `gorm:"size:64"`
	ImageID          string `gorm:"size:64"`
	ImageWidth       int64
	ImageHeight      int64
	ImageURL         string `gorm:"size:2048"`

	Indoor           int64
	Lap              int64
	Adaptability     int64
	AffectionLevel   int64
	ChildFriendly    int64
	DogFriendly      int64
	EnergyLevel      int64
	Grooming         int64
	HealthIssues     int64
	Intelligence     int64
	SheddingLevel    int64
	SocialNeeds      int64
	StrangerFriendly int64
	Vocalisation     int64
	Experimental     int64
	Hairless         int64
	Natural          int64
	Rare             int64
	Rex              int64
	SuppressedTail   int64
	ShortLegs        int64
	Hypoallergenic   int64

	CreatedAt int64 `gorm:"autoCreateTime:false"`
}

func (BreedEntity) TableName() string {
	return "breeds"
}

// NewBreedEntity flattens a breed into its table row.
func NewBreedEntity(b Breed) BreedEntity {
	return BreedEntity{
		ID:               b.ID,
		Name:             b.Name,
		CFAURL:           b.CFAURL,
		VetstreetURL:     b.VetstreetURL,
		VCAHospitalsURL:  b.VCAHospitalsURL,
		Temperament:      b.Temperament,
		Origin:           b.Origin,
		CountryCodes:     b.CountryCodes,
		CountryCode:      b.CountryCode,
		Description:      b.Description,
		LifeSpan:         b.LifeSpan,
		AltNames:         b.AltNames,
		WikipediaURL:     b.WikipediaURL,
		ReferenceImageID: b.ReferenceImageID,
		WeightImperial:   b.Weight.Imperial,
		WeightMetric:     b.Weight.Metric,
		ImageID:          b.Image.ID,
		ImageWidth:       b.Image.Width,
		ImageHeight:      b.Image.Height,
		ImageURL:         b.Image.URL,
		Indoor:           b.Indoor,
		Lap:              b.Lap,
		Adaptability:     b.Adaptability,
		AffectionLevel:   b.AffectionLevel,
		ChildFriendly:    b.ChildFriendly,
		DogFriendly:      b.DogFriendly,
		EnergyLevel:      b.EnergyLevel,
		Grooming:         b.Grooming,
		HealthIssues:     b.HealthIssues,
		Intelligence:     b.Intelligence,
		SheddingLevel:    b.SheddingLevel,
		SocialNeeds:      b.SocialNeeds,
		StrangerFriendly: b.StrangerFriendly,
		Vocalisation:     b.Vocalisation,
		Experimental:     b.Experimental,
		Hairless:         b.Hairless,
		Natural:          b.Natural,
		Rare:             b.Rare,
		Rex:              b.Rex,
		SuppressedTail:   b.SuppressedTail,
		ShortLegs:        b.ShortLegs,
		Hypoallergenic:   b.Hypoallergenic,
		CreatedAt:        b.CreatedAt,
	}
}

// ToBreed rebuilds the public record from a table row.
func (e BreedEntity) ToBreed() Breed {
	return Breed{
		ID:               e.ID,
		Name:             e.Name,
		CFAURL:           e.CFAURL,
		VetstreetURL:     e.VetstreetURL,
		VCAHospitalsURL:  e.VCAHospitalsURL,
		Temperament:      e.Temperament,
		Origin:           e.Origin,
		CountryCodes:     e.CountryCodes,
		CountryCode:      e.CountryCode,
		Description:      e.Description,
		LifeSpan:         e.LifeSpan,
		AltNames:         e.AltNames,
		WikipediaURL:     e.WikipediaURL,
		ReferenceImageID: e.ReferenceImageID,
		Weight: Weight{
			Imperial: e.WeightImperial,
			Metric:   e.WeightMetric,
		},
		Image: Image{
			ID:     e.ImageID,
			Width:  e.ImageWidth,
			Height: e.ImageHeight,
			URL:    e.ImageURL,
		},
		Indoor:           e.Indoor,
		Lap:              e.Lap,
		Adaptability:     e.Adaptability,
		AffectionLevel:   e.AffectionLevel,
		ChildFriendly:    e.ChildFriendly,
		DogFriendly:      e.DogFriendly,
		EnergyLevel:      e.EnergyLevel,
		Grooming:         e.Grooming,
		HealthIssues:     e.HealthIssues,
		Intelligence:     e.Intelligence,
		SheddingLevel:    e.SheddingLevel,
		SocialNeeds:      e.SocialNeeds,
		StrangerFriendly: e.StrangerFriendly,
		Vocalisation:     e.Vocalisation,
		Experimental:     e.Experimental,
		Hairless:         e.Hairless,
		Natural:          e.Natural,
		Rare:             e.Rare,
		Rex:              e.Rex,
		SuppressedTail:   e.SuppressedTail,
		ShortLegs:        e.ShortLegs,
		Hypoallergenic:   e.Hypoallergenic,
		CreatedAt:        e.CreatedAt,
	}
}

// FavoriteBreedEntity marks a breed id as favorite. CreatedAt is the time
// the mark was set, in epoch milliseconds.
type FavoriteBreedEntity struct {
	ID        string `gorm:"primaryKey;size:64"`
	CreatedAt int64  `gorm:"index;autoCreateTime:false"`
}

func (FavoriteBreedEntity) TableName() string {
	return "favorite_breeds"
}
