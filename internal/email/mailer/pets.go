// internal/email/mailer/pets.go
package mailer

import "github.com/adoptyme/backend/internal/email"

const (
	petSightingHTML = `<p>Hi {{.OwnerName}},</p>
<p>Someone reported seeing <b>{{.PetName}}</b>!</p>
<p>Location: {{.Lat}}, {{.Lon}}</p>`
	petSightingText = `Hi {{.OwnerName}},
Someone reported seeing {{.PetName}}!
Location: {{.Lat}}, {{.Lon}}`
)

type PetSightingData struct {
	OwnerName string
	PetName   string
	Lat       float64
	Lon       float64
}

// SendPetSightingEmail notifies the owner of a reported sighting.
func SendPetSightingEmail(g email.Gateway, to string, data PetSightingData) error {
	return schedule(g, to, "",
		"Someone saw your pet!",
		petSightingHTML, petSightingText, data,
	)
}
