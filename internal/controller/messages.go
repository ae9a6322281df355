package controller

// User-facing texts. They are Polish literals on purpose and not configurable.
const (
	msgNoFile = "Proszę wybrać plik PDF"

	msgUploadFailed     = "Błąd podczas analizy CV"
	msgUploadUnexpected = "Wystąpił nieoczekiwany błąd podczas analizy CV"

	msgNoCVData      = "Nie znaleziono danych CV"
	msgSearchFailed  = "Wystąpił błąd podczas wyszukiwania ofert pracy"
	msgNoJobsResults = "Nie znaleziono ofert pracy. Spróbuj ponownie później."
)
