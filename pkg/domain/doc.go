/*
Package domain contains the core models shared by the session store and its adapters.

It is kept free of I/O and of any knowledge about the backing key-value store,
following the same Hexagonal Architecture split as the rest of the module.

# Key Entities

  - Record: the opaque session payload (cookie attributes plus user data).
  - CookieOptions: the cookie attributes the session layer persists alongside the data.
  - Errors: sentinel errors describing construction and data-integrity faults.
*/
package domain
