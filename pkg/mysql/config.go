package mysql

import "fmt"

type Config struct {
	Username string `yaml:"username" validate:"required"`
	Password string `yaml:"password"`
	Host     string `yaml:"host" validate:"required"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database" validate:"required"`
}

// ToDBConnectionURI builds a go-sql-driver DSN. parseTime makes DATE columns
// scan into time.Time.
func (c Config) ToDBConnectionURI() string {
	port := c.Port
	if port == 0 {
		port = 3306
	}

	return fmt.Sprintf(
		"%s:%s@tcp(%s:%d)/%s?parseTime=true",
		c.Username,
		c.Password,
		c.Host,
		port,
		c.Database,
	)
}
