package api

import "fmt"

const (
	msgBookNotFound      = "Book with the specified id not found."
	msgBookCreated       = "New book added to the library."
	msgBookUpdated       = "Book information updated."
	msgBookDeleted       = "Book deleted."
	msgUserNotFound      = "User with the specified id not found."
	msgUserCreated       = "New user added."
	msgUserDuplicate     = "A user with the specified email already exists."
	msgUserUpdated       = "User information updated."
	msgUserDeleted       = "User deleted."
	msgCheckoutReference = "User or book with the specified id not found."
)

func msgBookCount(n int64) string {
	return fmt.Sprintf("Number of books in the library: %d", n)
}

func msgUserCount(n int64) string {
	return fmt.Sprintf("Number of library users: %d", n)
}

func msgCheckout(userID, bookID string) string {
	return fmt.Sprintf("User %s took book %s.", userID, bookID)
}
