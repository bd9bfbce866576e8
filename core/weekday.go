package core

// Weekday is an ISO weekday number: 1 (Lunes) through 7 (Domingo).
type Weekday int

const (
	Lunes Weekday = iota + 1
	Martes
	Miercoles
	Jueves
	Viernes
	Sabado
	Domingo
)

var weekdayNames = map[Weekday]string{
	Lunes:     "Lunes",
	Martes:    "Martes",
	Miercoles: "Miércoles",
	Jueves:    "Jueves",
	Viernes:   "Viernes",
	Sabado:    "Sábado",
	Domingo:   "Domingo",
}

func (d Weekday) Valid() bool {
	return d >= Lunes && d <= Domingo
}

func (d Weekday) String() string {
	if name, ok := weekdayNames[d]; ok {
		return name
	}
	return "?"
}
