package validation

const (
	msgBookTitle  = "Book title must be longer than 2 characters."
	msgBookAuthor = "Author name must be longer than 2 characters."
	msgPage       = "Page must be a number."
	msgUserName   = "User name must be longer than 2 characters."
)

// Book routes.
var (
	BookBody = Rules{
		{Field: "title", Source: Body, Check: MinLength(3), Message: msgBookTitle},
		{Field: "author", Source: Body, Check: MinLength(3), Message: msgBookAuthor},
		{Field: "publicationYear", Source: Body, Check: Integer, Message: "Publication year is invalid."},
		{Field: "pagesNumber", Source: Body, Check: Integer, Message: "Number of pages is invalid."},
	}

	BookTitle = Rules{
		{Field: "title", Source: Body, Check: MinLength(3), Message: msgBookTitle},
	}

	BookID = Rules{
		{Field: "id", Source: Param, Check: MinLength(1), Message: "Book id is too short."},
	}

	BookQuery = Rules{
		{Field: "title", Source: Query, Optional: true, Check: MinLength(3), Message: msgBookTitle},
		{Field: "author", Source: Query, Optional: true, Check: MinLength(3), Message: msgBookAuthor},
		{Field: "page", Source: Query, Optional: true, Check: Numeric, Message: msgPage},
	}
)

// User routes.
var (
	UserBody = Rules{
		{Field: "name", Source: Body, Check: MinLength(3), Message: msgUserName},
		{Field: "email", Source: Body, Check: Email, Message: "Email is invalid."},
	}

	UserName = Rules{
		{Field: "name", Source: Body, Check: MinLength(3), Message: msgUserName},
	}

	UserID = Rules{
		{Field: "id", Source: Param, Check: MinLength(1), Message: "User id is too short."},
	}

	UserQuery = Rules{
		{Field: "page", Source: Query, Optional: true, Check: Numeric, Message: msgPage},
	}

	CheckoutBody = Rules{
		{Field: "userId", Source: Body, Check: MinLength(1), Message: "User id is too short."},
		{Field: "bookId", Source: Body, Check: MinLength(1), Message: "Book id is too short."},
	}
)
