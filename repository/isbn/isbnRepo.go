package isbnrepo

type BookMeta struct {
	Title    string
	Author   string
	Synopsis string
}

type Repo interface {
	Lookup(isbn string) (*BookMeta, error)
}
