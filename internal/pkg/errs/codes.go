package errs

type Code string

const (
	CodeReservationCreationFailed       Code = "RESERVATION_CREATION_FAILED"
	CodeReservationNotFound             Code = "RESERVATION_NOT_FOUND"
	CodeReservationFetchFailed          Code = "RESERVATION_FETCH_FAILED"
	CodeReservationDeletionFailed       Code = "RESERVATION_DELETION_FAILED"
	CodeReservationDateRangeFetchFailed Code = "RESERVATION_DATE_RANGE_FETCH_FAILED"
	CodeReservationTableCheckFailed     Code = "RESERVATION_TABLE_CHECK_FAILED"
	CodeOverbookingNotAllowed           Code = "OVERBOOKING_NOT_ALLOWED"
	CodeInvalidDateFormat               Code = "INVALID_DATE_FORMAT"
	CodeUserNotFound                    Code = "USER_NOT_FOUND"
	CodeUserFetchFailed                 Code = "USER_FETCH_FAILED"
	CodeUserEmailAlreadyExists          Code = "USER_EMAIL_ALREADY_EXISTS"
	CodeUserEmailCheckFailed            Code = "USER_EMAIL_CHECK_FAILED"
	CodeUserCreationFailed              Code = "USER_CREATION_FAILED"
	CodeUserListFailed                  Code = "USER_LIST_FAILED"
	CodeGeneralValidationFailed         Code = "GENERAL_VALIDATION_FAILED"
	CodeGeneralResourceNotFound         Code = "GENERAL_RESOURCE_NOT_FOUND"
	CodeGeneralInternalServerError      Code = "GENERAL_INTERNAL_SERVER_ERROR"
)

type catalogueEntry struct {
	kind    Kind
	message string
	details string
}

var catalogue = map[Code]catalogueEntry{
	CodeReservationCreationFailed: {KindDependency,
		"Failed to create the reservation.",
		"An error occurred while saving the reservation. Please try again later."},
	CodeReservationNotFound: {KindNotFound,
		"Reservation not found.",
		"The requested reservation does not exist."},
	CodeReservationFetchFailed: {KindDependency,
		"Failed to fetch the reservation.",
		"An error occurred while fetching the reservation."},
	CodeReservationDeletionFailed: {KindDependency,
		"Failed to delete the reservation.",
		"An error occurred while deleting the reservation."},
	CodeReservationDateRangeFetchFailed: {KindDependency,
		"Failed to fetch reservations for the given date range.",
		"An error occurred while listing reservations."},
	CodeReservationTableCheckFailed: {KindDependency,
		"Failed to check table availability.",
		"An error occurred while checking the table capacity."},
	CodeOverbookingNotAllowed: {KindConflict,
		"This table is fully booked.",
		"The requested number of seats exceeds the remaining capacity of the table."},
	CodeInvalidDateFormat: {KindValidation,
		"Invalid date format.",
		"Dates must be RFC 3339 timestamps in UTC, ending with 'Z'."},
	CodeUserNotFound: {KindNotFound,
		"User not found.",
		"The user does not exist."},
	CodeUserFetchFailed: {KindDependency,
		"Failed to fetch the user.",
		"An error occurred while fetching the user."},
	CodeUserEmailAlreadyExists: {KindConflict,
		"A user with this email already exists.",
		"The email address is already registered."},
	CodeUserEmailCheckFailed: {KindDependency,
		"Failed to check the email address.",
		"An error occurred while checking whether the email is registered."},
	CodeUserCreationFailed: {KindDependency,
		"Failed to create the user.",
		"An error occurred while saving the user."},
	CodeUserListFailed: {KindDependency,
		"Failed to fetch users.",
		"An error occurred while listing users."},
	CodeGeneralValidationFailed: {KindValidation,
		"Validation failed. Please check that you have filled all the fields correctly.",
		""},
	CodeGeneralResourceNotFound: {KindNotFound,
		"The requested resource was not found.",
		""},
	CodeGeneralInternalServerError: {KindDependency,
		"Internal server error.",
		"An unexpected error occurred."},
}

func lookup(code Code) catalogueEntry {
	if entry, ok := catalogue[code]; ok {
		return entry
	}
	return catalogue[CodeGeneralInternalServerError]
}
